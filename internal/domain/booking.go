package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit-card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodBankTransfer:
		return true
	}
	return false
}

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Booking is a single trip reservation. UserID is nil for guest bookings.
type Booking struct {
	ID          string  `json:"id"`
	UserID      *string `json:"userId,omitempty"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Destination string  `json:"destination"`

	TravelDate time.Time `json:"travelDate"`
	ReturnDate time.Time `json:"returnDate"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
	Package    string    `json:"package"`

	SpecialRequests string `json:"specialRequests"`

	PaymentMethod PaymentMethod `json:"paymentMethod"`
	// TotalPrice keeps the client's display format, e.g. "$1,500".
	TotalPrice string `json:"totalPrice"`

	BookingReference string        `json:"bookingReference"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingPatch carries the mutable booking fields for a partial update.
// Nil means "leave unchanged".
type BookingPatch struct {
	FirstName       *string
	LastName        *string
	Email           *string
	Phone           *string
	Address         *string
	City            *string
	Country         *string
	Destination     *string
	TravelDate      *time.Time
	ReturnDate      *time.Time
	Adults          *int
	Children        *int
	Package         *string
	SpecialRequests *string
	PaymentMethod   *PaymentMethod
	TotalPrice      *string
	Status          *BookingStatus
	PaymentStatus   *PaymentStatus
}

func (p BookingPatch) Empty() bool {
	return p == BookingPatch{}
}
