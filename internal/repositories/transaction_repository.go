package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/barryallent/expense-tracker-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository handles database operations for transactions
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &TransactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database
func (r *TransactionRepository) Create(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByUserID retrieves all of a user's transactions, most recent first.
// Creation time breaks ties between same-day entries.
func (r *TransactionRepository) GetByUserID(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.
		Preload("Category").
		Where("user_id = ?", userID).
		Order("transaction_date DESC, created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

// GetByUserIDAndDateRange retrieves a user's transactions with a date in
// [start, end).
func (r *TransactionRepository) GetByUserIDAndDateRange(userID uuid.UUID, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.
		Where("user_id = ? AND transaction_date >= ? AND transaction_date < ?", userID, start, end).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by date range: %w", err)
	}

	return transactions, nil
}
