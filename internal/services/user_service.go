package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/barryallent/expense-tracker-app/internal/repositories"

	"github.com/google/uuid"
)

var ErrInvalidCurrency = errors.New("currency must be a 3-letter code")

// UserService handles user profile operations
type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepositoryInterface, logger *slog.Logger) UserServiceInterface {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateCurrency sets the user's preferred display currency
func (s *UserService) UpdateCurrency(userID uuid.UUID, currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return ErrInvalidCurrency
	}

	if err := s.userRepo.UpdateCurrency(userID, currency); err != nil {
		return fmt.Errorf("failed to update currency: %w", err)
	}

	s.logger.Info("currency updated", "user_id", userID, "currency", currency)
	return nil
}
