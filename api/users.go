package api

import (
	"net/http"

	"github.com/Domenick1991/travelwise/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service    auth.AuthUseCase
	production bool
}

func NewUserHandler(service auth.AuthUseCase, production bool) *UserHandler {
	return &UserHandler{service: service, production: production}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/user", h.me)
}

func (h *UserHandler) register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter all fields"})
		return
	}

	result, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *UserHandler) login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter all fields"})
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// me returns the caller's full user document, password hash excluded.
func (h *UserHandler) me(c *gin.Context) {
	token := tokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	user, err := h.service.Verify(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, user)
}
