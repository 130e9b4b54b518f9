package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/models"
	"github.com/barryallent/expense-tracker-app/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	logger          *slog.Logger
	now             func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// Create records a new income or expense entry for the user
func (s *TransactionService) Create(userID uuid.UUID, req *dto.TransactionRequest) (*dto.TransactionResponse, error) {
	transaction := &models.Transaction{
		UserID:          userID,
		Type:            req.Type,
		Amount:          decimal.NewFromFloat(req.Amount).Round(2),
		Description:     req.Description,
		TransactionDate: req.TransactionDate.Time,
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID: %w", err)
		}
		category, err := s.categoryRepo.GetByID(categoryID)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, repositories.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		transaction.CategoryID = &category.ID
		transaction.Category = category
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, err
	}

	s.logger.Info("transaction created",
		"user_id", userID,
		"type", transaction.Type,
		"amount", transaction.Amount)

	resp := toTransactionResponse(transaction)
	return &resp, nil
}

// ListForUser returns the user's transactions, most recent first
func (s *TransactionService) ListForUser(userID uuid.UUID) ([]dto.TransactionResponse, error) {
	transactions, err := s.transactionRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}
	return responses, nil
}

// CurrentMonthSummary computes the income/expense/balance totals for the
// calendar month in progress. Balance is income minus expense.
func (s *TransactionService) CurrentMonthSummary(userID uuid.UUID) (*dto.SummaryResponse, error) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	transactions, err := s.transactionRepo.GetByUserIDAndDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	income := decimal.Zero
	expense := decimal.Zero
	for i := range transactions {
		if transactions[i].IsIncome() {
			income = income.Add(transactions[i].Amount)
		} else {
			expense = expense.Add(transactions[i].Amount)
		}
	}
	balance := income.Sub(expense)

	return &dto.SummaryResponse{
		Income:  income.InexactFloat64(),
		Expense: expense.InexactFloat64(),
		Balance: balance.InexactFloat64(),
		Year:    now.Year(),
		Month:   int(now.Month()),
	}, nil
}

func toTransactionResponse(t *models.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:              t.ID.String(),
		Type:            t.Type,
		Amount:          t.Amount.InexactFloat64(),
		Description:     t.Description,
		TransactionDate: dto.Date{Time: t.TransactionDate},
	}
	if t.Category != nil {
		resp.Category = &dto.CategoryRef{Name: t.Category.Name}
	}
	return resp
}
