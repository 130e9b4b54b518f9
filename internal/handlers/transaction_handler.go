package handlers

import (
	"errors"
	"net/http"

	"github.com/barryallent/expense-tracker-app/internal/dto"
	"github.com/barryallent/expense-tracker-app/internal/metrics"
	"github.com/barryallent/expense-tracker-app/internal/repositories"
	"github.com/barryallent/expense-tracker-app/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	metrics            metrics.RecorderInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface, recorder metrics.RecorderInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		metrics:            recorder,
	}
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	if !ok {
		return SendError(c, http.StatusUnauthorized, "Invalid token")
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.transactionService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return SendError(c, http.StatusBadRequest, "Category not found")
		}
		return SendError(c, http.StatusBadRequest, err.Error())
	}

	h.metrics.RecordTransactionCreated(req.Type)
	return c.JSON(http.StatusOK, resp)
}

// List handles GET /transactions
func (h *TransactionHandler) List(c echo.Context) error {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	if !ok {
		return SendError(c, http.StatusUnauthorized, "Invalid token")
	}

	transactions, err := h.transactionService.ListForUser(userID)
	if err != nil {
		return SendError(c, http.StatusInternalServerError, "Failed to list transactions")
	}

	return c.JSON(http.StatusOK, transactions)
}

// Summary handles GET /transactions/summary
func (h *TransactionHandler) Summary(c echo.Context) error {
	userID, ok := c.Get(UserIDContextKey).(uuid.UUID)
	if !ok {
		return SendError(c, http.StatusUnauthorized, "Invalid token")
	}

	summary, err := h.transactionService.CurrentMonthSummary(userID)
	if err != nil {
		return SendError(c, http.StatusInternalServerError, "Failed to compute summary")
	}

	h.metrics.RecordSummaryRequest()
	return c.JSON(http.StatusOK, summary)
}
