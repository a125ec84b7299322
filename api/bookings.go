package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/Domenick1991/travelwise/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service    booking.BookingUseCase
	production bool
}

type createBookingRequest struct {
	booking.CreateBookingInput
	// Token mirrors the legacy clients that send the auth token in the body.
	Token string `json:"token"`
}

type updateBookingRequest struct {
	booking.UpdateBookingInput
	Token string `json:"token"`
}

func NewBookingHandler(service booking.BookingUseCase, production bool) *BookingHandler {
	return &BookingHandler{service: service, production: production}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.GET("/reference/:ref", h.getByReference)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.cancel)
	router.GET("/user/my-bookings", h.myBookings)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) getByReference(c *gin.Context) {
	b, err := h.service.GetBookingByReference(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req.CreateBookingInput, h.callerToken(c, req.Token))
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Booking created successfully",
		"booking":          b,
		"bookingReference": b.BookingReference,
	})
}

func (h *BookingHandler) update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), req.UpdateBookingInput, h.callerToken(c, req.Token))
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully",
		"booking": b,
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	// A body is optional on cancellation.
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"), h.callerToken(c, req.Token))
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled successfully",
		"booking": b,
	})
}

func (h *BookingHandler) myBookings(c *gin.Context) {
	bookings, err := h.service.ListUserBookings(c.Request.Context(), tokenFromRequest(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		respondError(c, err, h.production)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// callerToken prefers the headers and falls back to the in-body token.
func (h *BookingHandler) callerToken(c *gin.Context, bodyToken string) string {
	if token := tokenFromRequest(c); token != "" {
		return token
	}
	return bodyToken
}
