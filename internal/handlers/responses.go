package handlers

import (
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware.
const (
	UserIDContextKey   = "user_id"
	UsernameContextKey = "username"
	TokenContextKey    = "token"
)

// ErrorBody is the flat error shape returned by every endpoint. Clients
// resolve messages from the error field first, then message.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the body for success responses without a payload
type MessageBody struct {
	Message string `json:"message"`
}

// SendError sends a flat error response with the given status
func SendError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Error: message})
}

// SendMessage sends a plain message response with the given status
func SendMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageBody{Message: message})
}
