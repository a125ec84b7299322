package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/Domenick1991/travelwise/internal/kafka"
	"github.com/Domenick1991/travelwise/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput, callerToken string) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListUserBookings(ctx context.Context, callerToken string) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, input UpdateBookingInput, callerToken string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id, callerToken string) (*domain.Booking, error)
}

// TokenVerifier is the slice of the auth service the workflow needs: strict
// verification for owner-only reads, soft resolution for guest-capable writes.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
	ResolveOptional(ctx context.Context, token string) *domain.User
}

type Cache interface {
	GetBookings(ctx context.Context) ([]domain.Booking, error)
	SetBookings(ctx context.Context, bookings []domain.Booking) error
	InvalidateBookings(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	users              repository.UserRepository
	auth               TokenVerifier
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source; used by tests for date-rule checks.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	auth TokenVerifier,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		users:        users,
		auth:         auth,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput, callerToken string) (*domain.Booking, error) {
	// A stale or invalid token degrades to a guest booking instead of
	// rejecting the request; guest checkout must keep working.
	caller := s.auth.ResolveOptional(ctx, callerToken)

	if missing := input.missingFields(); len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}

	// A taken reference is reported before the remaining validation; the
	// unique index catches the race.
	existing, err := s.bookings.GetByReference(ctx, input.BookingReference)
	if err != nil && !errors.Is(err, domain.ErrBookingNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateReference
	}

	booking, err := input.validate(s.now())
	if err != nil {
		return nil, err
	}

	if caller != nil {
		booking.UserID = &caller.ID
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	// The booking record is authoritative: a failed owner link leaves the
	// booking persisted but unlinked, and is not rolled back.
	if caller != nil {
		if err := s.users.AppendBooking(ctx, caller.ID, booking.ID); err != nil {
			logrus.WithError(err).WithField("booking_id", booking.ID).Warn("failed to link booking to user")
		}
	}

	s.invalidateListing(ctx)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) GetBookingByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return s.bookings.GetByReference(ctx, reference)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetBookings(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetBookings(ctx, bookings)
	}
	return bookings, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, callerToken string) ([]domain.Booking, error) {
	caller, err := s.auth.Verify(ctx, callerToken)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByUser(ctx, caller.ID)
}

func (s *BookingService) UpdateBooking(ctx context.Context, id string, input UpdateBookingInput, callerToken string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(ctx, current, callerToken); err != nil {
		return nil, err
	}

	patch, err := input.validate()
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.publish(ctx, "booking_updated", updated)
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id, callerToken string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(ctx, current, callerToken); err != nil {
		return nil, err
	}

	// Soft cancel: the record is kept and stays retrievable.
	updated, err := s.bookings.SetStatus(ctx, id, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.publish(ctx, "booking_cancelled", updated)
	return updated, nil
}

// authorizeMutation rejects a resolved caller that is not the owner. A guest
// booking has no owner to check against, so anyone holding its id may mutate
// it.
func (s *BookingService) authorizeMutation(ctx context.Context, booking *domain.Booking, callerToken string) error {
	caller := s.auth.ResolveOptional(ctx, callerToken)
	if caller != nil && booking.UserID != nil && *booking.UserID != caller.ID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *BookingService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBookings(ctx); err != nil {
		logrus.WithError(err).Warn("failed to invalidate bookings cache")
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Reference:   booking.BookingReference,
		Email:       booking.Email,
		Destination: booking.Destination,
		Status:      string(booking.Status),
		TravelDate:  booking.TravelDate,
		ReturnDate:  booking.ReturnDate,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.BookingReference, event); err != nil {
		logrus.WithError(err).WithField("booking_id", booking.ID).Warnf("failed to publish %s event", eventType)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.BookingReference, event); err != nil {
			logrus.WithError(err).WithField("booking_id", booking.ID).Warnf("failed to publish %s notification", eventType)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
