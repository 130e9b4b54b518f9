package handlers

import (
	"errors"
	"net/http"

	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateCurrency handles PUT /users/currency
func (h *UserHandler) UpdateCurrency(c echo.Context) error {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	if !ok {
		return SendError(c, http.StatusUnauthorized, "Invalid token")
	}

	var req dto.CurrencyUpdateRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Currency == "" {
		return SendError(c, http.StatusBadRequest, "Currency is required")
	}

	if err := h.userService.UpdateCurrency(userID, req.Currency); err != nil {
		if errors.Is(err, services.ErrInvalidCurrency) {
			return SendError(c, http.StatusBadRequest, services.ErrInvalidCurrency.Error())
		}
		return SendError(c, http.StatusBadRequest, "Failed to update currency")
	}

	return SendMessage(c, http.StatusOK, "Currency updated successfully")
}
