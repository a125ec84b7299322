package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/Domenick1991/travelwise/internal/service/auth"
	"github.com/Domenick1991/travelwise/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// respondError translates the domain error taxonomy into the status codes and
// user-facing messages of the API contract. Store failures keep their detail
// out of production responses.
func respondError(c *gin.Context, err error, production bool) {
	var missing *domain.MissingFieldsError
	if errors.As(err, &missing) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields: " + strings.Join(missing.Fields, ", ")})
		return
	}

	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": []string{invalid.Error()}})
		return
	}

	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter all fields"})
	case errors.Is(err, auth.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter a valid email address"})
	case errors.Is(err, auth.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters long"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists with this email"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, booking.ErrTravelDateInPast):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Travel date cannot be in the past"})
	case errors.Is(err, booking.ErrReturnBeforeTravel):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Return date must be after travel date"})
	case errors.Is(err, domain.ErrDuplicateReference):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking reference already exists. Please try again."})
	case errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token expired"})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		body := gin.H{"message": "Internal server error"}
		if !production {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// tokenFromRequest checks the Authorization bearer header first, then the
// legacy x-auth-token header.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.GetHeader("x-auth-token")
}
