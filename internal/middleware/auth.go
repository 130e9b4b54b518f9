package middleware

import (
	"net/http"

	"github.com/barryallent/expense-tracker-app/internal/handlers"
	"github.com/barryallent/expense-tracker-app/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid bearer token.
// Requests without a valid Authorization header are rejected with 401 so the
// client treats them as a credential validation failure.
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, http.StatusUnauthorized, "Authorization token is required")
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, http.StatusUnauthorized, "Invalid authorization header")
			}

			claims, err := tokenService.ValidateToken(token)
			if err != nil {
				if err == services.ErrExpiredToken {
					return handlers.SendError(c, http.StatusUnauthorized, "Token has expired")
				}
				return handlers.SendError(c, http.StatusUnauthorized, "Invalid token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, http.StatusUnauthorized, "Invalid token")
			}

			c.Set(handlers.UserIDContextKey, userID)
			c.Set(handlers.UsernameContextKey, claims.Username)
			c.Set(handlers.TokenContextKey, token)

			return next(c)
		}
	}
}
