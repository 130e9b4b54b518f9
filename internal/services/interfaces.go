package services

import (
	"time"

	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/models"

	"github.com/google/uuid"
)

// PasswordServiceInterface defines password hashing operations
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// TokenServiceInterface defines JWT operations
type TokenServiceInterface interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*models.Claims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// AuthServiceInterface defines authentication business logic
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	ProfileResponse(userID uuid.UUID, token string) (*dto.AuthResponse, error)
}

// UserServiceInterface defines user profile operations
type UserServiceInterface interface {
	UpdateCurrency(userID uuid.UUID, currency string) error
}

// TransactionServiceInterface defines transaction business logic
type TransactionServiceInterface interface {
	Create(userID uuid.UUID, req *dto.TransactionRequest) (*dto.TransactionResponse, error)
	ListForUser(userID uuid.UUID) ([]dto.TransactionResponse, error)
	CurrentMonthSummary(userID uuid.UUID) (*dto.SummaryResponse, error)
}
