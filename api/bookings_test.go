package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/Domenick1991/travelwise/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput, callerToken string) (*domain.Booking, error) {
	args := m.Called(ctx, input, callerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBookingByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListUserBookings(ctx context.Context, callerToken string) ([]domain.Booking, error) {
	args := m.Called(ctx, callerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpdateBooking(ctx context.Context, id string, input booking.UpdateBookingInput, callerToken string) (*domain.Booking, error) {
	args := m.Called(ctx, id, input, callerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, id, callerToken string) (*domain.Booking, error) {
	args := m.Called(ctx, id, callerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := []byte(`{"destination":"Bali","travelDate":"2030-06-10","returnDate":"2030-06-15",` +
		`"adults":2,"package":"premium","firstName":"Ann","lastName":"Smith","email":"ann@x.com",` +
		`"phone":"+1234567890","address":"1 Main St","city":"Springfield","country":"USA",` +
		`"paymentMethod":"credit-card","bookingReference":"TW-2030-00001","totalPrice":"$1,500"}`)
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Booking{
		ID:               "booking-1",
		Destination:      "Bali",
		BookingReference: "TW-2030-00001",
		Status:           domain.BookingStatusConfirmed,
	}
	mockService.On("CreateBooking", c.Request.Context(), mock.MatchedBy(func(in booking.CreateBookingInput) bool {
		return in.Destination == "Bali" && in.BookingReference == "TW-2030-00001" && in.Adults == 2
	}), "").Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]json.RawMessage
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.JSONEq(t, `"Booking created successfully"`, string(response["message"]))
	assert.JSONEq(t, `"TW-2030-00001"`, string(response["bookingReference"]))
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_bodyTokenFallback(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := []byte(`{"destination":"Bali","token":"body-token"}`)
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", mock.Anything, mock.Anything, "body-token").
		Return(&domain.Booking{ID: "booking-1"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_headerBeatsBodyToken(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := []byte(`{"destination":"Bali","token":"body-token"}`)
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("Authorization", "Bearer header-token")

	mockService.On("CreateBooking", mock.Anything, mock.Anything, "header-token").
		Return(&domain.Booking{ID: "booking-1"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_missingFields(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.MissingFieldsError{Fields: []string{"destination", "travelDate"}})

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields: destination, travelDate")
}

func TestBookingHandler_create_duplicateReference(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader([]byte(`{"bookingReference":"TW-1"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrDuplicateReference)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Booking reference already exists. Please try again.")
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	stored := []domain.Booking{{ID: "booking-1"}, {ID: "booking-2"}}
	mockService.On("ListBookings", c.Request.Context()).Return(stored, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Booking
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
}

func TestBookingHandler_list_emptyIsArray(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	mockService.On("ListBookings", c.Request.Context()).Return([]domain.Booking(nil), nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "booking-1"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/booking-1", nil)

	mockService.On("GetBooking", c.Request.Context(), "booking-1").
		Return(&domain.Booking{ID: "booking-1", Destination: "Bali"}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response domain.Booking
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Bali", response.Destination)
}

func TestBookingHandler_get_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/missing", nil)

	mockService.On("GetBooking", mock.Anything, "missing").Return(nil, domain.ErrBookingNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Booking not found")
}

func TestBookingHandler_getByReference(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "ref", Value: "TW-2030-00001"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/reference/TW-2030-00001", nil)

	mockService.On("GetBookingByReference", c.Request.Context(), "TW-2030-00001").
		Return(&domain.Booking{ID: "booking-1", BookingReference: "TW-2030-00001"}, nil)

	handler.getByReference(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TW-2030-00001")
}

func TestBookingHandler_update(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "booking-1"}}
	body := []byte(`{"specialRequests":"window seat"}`)
	c.Request = httptest.NewRequest("PUT", "/api/bookings/booking-1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("x-auth-token", "token123")

	updated := &domain.Booking{ID: "booking-1", SpecialRequests: "window seat"}
	mockService.On("UpdateBooking", c.Request.Context(), "booking-1", mock.MatchedBy(func(in booking.UpdateBookingInput) bool {
		return in.SpecialRequests != nil && *in.SpecialRequests == "window seat"
	}), "token123").Return(updated, nil)

	handler.update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking updated successfully")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_update_forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "booking-1"}}
	c.Request = httptest.NewRequest("PUT", "/api/bookings/booking-1", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("UpdateBooking", mock.Anything, "booking-1", mock.Anything, mock.Anything).
		Return(nil, domain.ErrForbidden)

	handler.update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "booking-1"}}
	// DELETE without a body must still work.
	c.Request = httptest.NewRequest("DELETE", "/api/bookings/booking-1", nil)

	cancelled := &domain.Booking{ID: "booking-1", Status: domain.BookingStatusCancelled}
	mockService.On("CancelBooking", c.Request.Context(), "booking-1", "").Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking cancelled successfully")
	assert.Contains(t, w.Body.String(), string(domain.BookingStatusCancelled))
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_bodyToken(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "booking-1"}}
	c.Request = httptest.NewRequest("DELETE", "/api/bookings/booking-1", bytes.NewReader([]byte(`{"token":"body-token"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	cancelled := &domain.Booking{ID: "booking-1", Status: domain.BookingStatusCancelled}
	mockService.On("CancelBooking", mock.Anything, "booking-1", "body-token").Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_myBookings(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/api/bookings/user/my-bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer token123")

	owned := []domain.Booking{{ID: "booking-1"}}
	mockService.On("ListUserBookings", c.Request.Context(), "token123").Return(owned, nil)

	handler.myBookings(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Booking
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
}

func TestBookingHandler_myBookings_unauthenticated(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/api/bookings/user/my-bookings", nil)

	mockService.On("ListUserBookings", mock.Anything, "").Return(nil, domain.ErrUnauthenticated)

	handler.myBookings(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}
