package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error)
	SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookingColumns = `id, user_id, first_name, last_name, email, phone, address, city, country,
	destination, travel_date, return_date, adults, children, package, special_requests,
	payment_method, total_price, booking_reference, status, payment_status, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (id, user_id, first_name, last_name, email, phone, address, city, country,
		destination, travel_date, return_date, adults, children, package, special_requests,
		payment_method, total_price, booking_reference, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING created_at, updated_at`,
		booking.ID, booking.UserID, booking.FirstName, booking.LastName, booking.Email,
		booking.Phone, booking.Address, booking.City, booking.Country, booking.Destination,
		booking.TravelDate, booking.ReturnDate, booking.Adults, booking.Children,
		booking.Package, booking.SpecialRequests, booking.PaymentMethod, booking.TotalPrice,
		booking.BookingReference, booking.Status, booking.PaymentStatus).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		// The unique index on booking_reference is the serialization point for
		// concurrent creations with the same reference.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return storeError("create booking", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_reference = $1`, reference)
	return scanBooking(row)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, storeError("list user bookings", err)
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeError("list bookings", err)
	}
	return collectBookings(rows)
}

// Update applies the non-nil patch fields. An empty patch returns the
// current record unchanged.
func (r *PGBookingRepository) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	set := patchSetMap(patch)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set["updated_at"] = squirrel.Expr("now()")

	query, args, err := psql.Update("bookings").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + bookingColumns).
		ToSql()
	if err != nil {
		return nil, storeError("build update query", err)
	}

	return scanBooking(r.db.QueryRow(ctx, query, args...))
}

func (r *PGBookingRepository) SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2 RETURNING `+bookingColumns, status, id)
	return scanBooking(row)
}

func patchSetMap(patch domain.BookingPatch) map[string]interface{} {
	set := map[string]interface{}{}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.Country != nil {
		set["country"] = *patch.Country
	}
	if patch.Destination != nil {
		set["destination"] = *patch.Destination
	}
	if patch.TravelDate != nil {
		set["travel_date"] = *patch.TravelDate
	}
	if patch.ReturnDate != nil {
		set["return_date"] = *patch.ReturnDate
	}
	if patch.Adults != nil {
		set["adults"] = *patch.Adults
	}
	if patch.Children != nil {
		set["children"] = *patch.Children
	}
	if patch.Package != nil {
		set["package"] = *patch.Package
	}
	if patch.SpecialRequests != nil {
		set["special_requests"] = *patch.SpecialRequests
	}
	if patch.PaymentMethod != nil {
		set["payment_method"] = *patch.PaymentMethod
	}
	if patch.TotalPrice != nil {
		set["total_price"] = *patch.TotalPrice
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.PaymentStatus != nil {
		set["payment_status"] = *patch.PaymentStatus
	}
	return set
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.Address, &b.City, &b.Country, &b.Destination, &b.TravelDate, &b.ReturnDate,
		&b.Adults, &b.Children, &b.Package, &b.SpecialRequests, &b.PaymentMethod,
		&b.TotalPrice, &b.BookingReference, &b.Status, &b.PaymentStatus,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, storeError("scan booking", err)
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("read bookings", err)
	}
	return bookings, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
