package handlers

import (
	"errors"
	"net/http"

	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/metrics"
	"github.com/barryallent/expense-tracker-app/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
	metrics     metrics.RecorderInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface, recorder metrics.RecorderInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     recorder,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	_, err := h.authService.Register(&req)
	if err != nil {
		h.metrics.RecordRegistration(false)
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return SendError(c, http.StatusBadRequest, "Username is already taken!")
		case errors.Is(err, services.ErrEmailTaken):
			return SendError(c, http.StatusBadRequest, "Email is already in use!")
		case errors.Is(err, services.ErrPasswordTooShort):
			return SendError(c, http.StatusBadRequest, services.ErrPasswordTooShort.Error())
		default:
			return SendError(c, http.StatusInternalServerError, "Registration failed")
		}
	}

	h.metrics.RecordRegistration(true)
	return SendMessage(c, http.StatusOK, "User registered successfully!")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.metrics.RecordLogin(false)
		if errors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, http.StatusBadRequest, "Invalid username or password!")
		}
		return SendError(c, http.StatusInternalServerError, "Login failed")
	}

	h.metrics.RecordLogin(true)
	return c.JSON(http.StatusOK, resp)
}

// Validate handles GET /auth/validate. The auth middleware has already
// verified the bearer token; this echoes the token with a fresh profile.
func (h *AuthHandler) Validate(c echo.Context) error {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	if !ok {
		h.metrics.RecordTokenValidation(false)
		return SendError(c, http.StatusUnauthorized, "Invalid token")
	}
	token, _ := c.Get(TokenContextKey).(string)

	resp, err := h.authService.ProfileResponse(userID, token)
	if err != nil {
		h.metrics.RecordTokenValidation(false)
		return SendError(c, http.StatusUnauthorized, "Invalid token")
	}

	h.metrics.RecordTokenValidation(true)
	return c.JSON(http.StatusOK, resp)
}
