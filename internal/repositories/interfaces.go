package repositories

import (
	"time"

	"github.com/barryallent/expense-tracker-app/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateCurrency(id uuid.UUID, currency string) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByName(name string) (*models.Category, error)
	GetByID(id uuid.UUID) (*models.Category, error)
	CountDefaults() (int64, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	// GetByUserID returns the user's transactions most-recent-first.
	GetByUserID(userID uuid.UUID) ([]models.Transaction, error)
	GetByUserIDAndDateRange(userID uuid.UUID, start, end time.Time) ([]models.Transaction, error)
}
