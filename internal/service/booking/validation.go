package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/travelwise/internal/domain"
)

var (
	ErrTravelDateInPast   = fmt.Errorf("%w: travel date cannot be in the past", domain.ErrInvalidDateRange)
	ErrReturnBeforeTravel = fmt.Errorf("%w: return date must be after travel date", domain.ErrInvalidDateRange)
)

// CreateBookingInput is the typed request body for booking creation. Dates
// arrive as strings and are parsed during validation.
type CreateBookingInput struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	City             string `json:"city"`
	Country          string `json:"country"`
	Destination      string `json:"destination"`
	TravelDate       string `json:"travelDate"`
	ReturnDate       string `json:"returnDate"`
	Adults           int    `json:"adults"`
	Children         *int   `json:"children"`
	Package          string `json:"package"`
	SpecialRequests  string `json:"specialRequests"`
	PaymentMethod    string `json:"paymentMethod"`
	TotalPrice       string `json:"totalPrice"`
	BookingReference string `json:"bookingReference"`
}

// validate checks presence of every required field, the payment method enum
// and the date rules, then builds the booking with its creation defaults.
func (in CreateBookingInput) validate(now time.Time) (*domain.Booking, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}

	method := domain.PaymentMethod(in.PaymentMethod)
	if !domain.ValidPaymentMethod(method) {
		return nil, &domain.ValidationError{Field: "paymentMethod", Message: "must be one of credit-card, paypal, bank-transfer"}
	}

	travelDate, err := parseDate("travelDate", in.TravelDate)
	if err != nil {
		return nil, err
	}
	returnDate, err := parseDate("returnDate", in.ReturnDate)
	if err != nil {
		return nil, err
	}

	// Date-only comparison: time of day is ignored.
	if dateOnly(travelDate).Before(dateOnly(now)) {
		return nil, ErrTravelDateInPast
	}
	if !dateOnly(returnDate).After(dateOnly(travelDate)) {
		return nil, ErrReturnBeforeTravel
	}

	if in.Adults < 1 {
		return nil, &domain.ValidationError{Field: "adults", Message: "must be at least 1"}
	}
	children := 0
	if in.Children != nil {
		if *in.Children < 0 {
			return nil, &domain.ValidationError{Field: "children", Message: "must not be negative"}
		}
		children = *in.Children
	}

	return &domain.Booking{
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:            strings.TrimSpace(in.Phone),
		Address:          strings.TrimSpace(in.Address),
		City:             strings.TrimSpace(in.City),
		Country:          strings.TrimSpace(in.Country),
		Destination:      in.Destination,
		TravelDate:       travelDate,
		ReturnDate:       returnDate,
		Adults:           in.Adults,
		Children:         children,
		Package:          in.Package,
		SpecialRequests:  in.SpecialRequests,
		PaymentMethod:    method,
		TotalPrice:       in.TotalPrice,
		BookingReference: in.BookingReference,
		Status:           domain.BookingStatusConfirmed,
		PaymentStatus:    domain.PaymentStatusPending,
	}, nil
}

// missingFields reports absent required fields in submission order.
func (in CreateBookingInput) missingFields() []string {
	var missing []string
	required := []struct {
		name    string
		present bool
	}{
		{"destination", strings.TrimSpace(in.Destination) != ""},
		{"travelDate", strings.TrimSpace(in.TravelDate) != ""},
		{"returnDate", strings.TrimSpace(in.ReturnDate) != ""},
		{"adults", in.Adults != 0},
		{"package", strings.TrimSpace(in.Package) != ""},
		{"firstName", strings.TrimSpace(in.FirstName) != ""},
		{"lastName", strings.TrimSpace(in.LastName) != ""},
		{"email", strings.TrimSpace(in.Email) != ""},
		{"phone", strings.TrimSpace(in.Phone) != ""},
		{"address", strings.TrimSpace(in.Address) != ""},
		{"city", strings.TrimSpace(in.City) != ""},
		{"country", strings.TrimSpace(in.Country) != ""},
		{"paymentMethod", strings.TrimSpace(in.PaymentMethod) != ""},
		{"bookingReference", strings.TrimSpace(in.BookingReference) != ""},
		{"totalPrice", strings.TrimSpace(in.TotalPrice) != ""},
	}
	for _, field := range required {
		if !field.present {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// UpdateBookingInput is the typed patch body for booking updates. Nil fields
// are left unchanged.
type UpdateBookingInput struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	Destination     *string `json:"destination"`
	TravelDate      *string `json:"travelDate"`
	ReturnDate      *string `json:"returnDate"`
	Adults          *int    `json:"adults"`
	Children        *int    `json:"children"`
	Package         *string `json:"package"`
	SpecialRequests *string `json:"specialRequests"`
	PaymentMethod   *string `json:"paymentMethod"`
	TotalPrice      *string `json:"totalPrice"`
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"paymentStatus"`
}

// validate applies the creation-level type and enum constraints to the
// supplied fields.
func (in UpdateBookingInput) validate() (domain.BookingPatch, error) {
	var patch domain.BookingPatch

	patch.FirstName = in.FirstName
	patch.LastName = in.LastName
	patch.Email = in.Email
	patch.Phone = in.Phone
	patch.Address = in.Address
	patch.City = in.City
	patch.Country = in.Country
	patch.Destination = in.Destination
	patch.Package = in.Package
	patch.SpecialRequests = in.SpecialRequests
	patch.TotalPrice = in.TotalPrice

	if in.TravelDate != nil {
		t, err := parseDate("travelDate", *in.TravelDate)
		if err != nil {
			return domain.BookingPatch{}, err
		}
		patch.TravelDate = &t
	}
	if in.ReturnDate != nil {
		t, err := parseDate("returnDate", *in.ReturnDate)
		if err != nil {
			return domain.BookingPatch{}, err
		}
		patch.ReturnDate = &t
	}
	if in.Adults != nil {
		if *in.Adults < 1 {
			return domain.BookingPatch{}, &domain.ValidationError{Field: "adults", Message: "must be at least 1"}
		}
		patch.Adults = in.Adults
	}
	if in.Children != nil {
		if *in.Children < 0 {
			return domain.BookingPatch{}, &domain.ValidationError{Field: "children", Message: "must not be negative"}
		}
		patch.Children = in.Children
	}
	if in.PaymentMethod != nil {
		method := domain.PaymentMethod(*in.PaymentMethod)
		if !domain.ValidPaymentMethod(method) {
			return domain.BookingPatch{}, &domain.ValidationError{Field: "paymentMethod", Message: "must be one of credit-card, paypal, bank-transfer"}
		}
		patch.PaymentMethod = &method
	}
	if in.Status != nil {
		status := domain.BookingStatus(*in.Status)
		if !domain.ValidBookingStatus(status) {
			return domain.BookingPatch{}, &domain.ValidationError{Field: "status", Message: "must be one of pending, confirmed, cancelled, completed"}
		}
		patch.Status = &status
	}
	if in.PaymentStatus != nil {
		status := domain.PaymentStatus(*in.PaymentStatus)
		if !domain.ValidPaymentStatus(status) {
			return domain.BookingPatch{}, &domain.ValidationError{Field: "paymentStatus", Message: "must be one of pending, paid, failed, refunded"}
		}
		patch.PaymentStatus = &status
	}

	return patch, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.ValidationError{Field: field, Message: "invalid date, expected YYYY-MM-DD or RFC3339"}
}

// dateOnly truncates to the UTC calendar day so wall-clock offsets cannot
// shift the comparison across a day boundary.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
