package dto

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date marshals as a calendar date without a time component, matching the
// transactionDate wire format.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// Some backends send a full timestamp here.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
	}
	d.Time = t
	return nil
}

// Transaction Request DTOs

// TransactionRequest creates a new income or expense entry
type TransactionRequest struct {
	Type            string  `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Description     string  `json:"description" validate:"required,max=255"`
	CategoryID      string  `json:"categoryId,omitempty"`
	TransactionDate Date    `json:"transactionDate"`
}

// Transaction Response DTOs

// CategoryRef carries the category label attached to a transaction. A missing
// category leaves Name empty; nothing guesses a default label.
type CategoryRef struct {
	Name string `json:"name"`
}

// TransactionResponse is a single transaction as returned by the server
type TransactionResponse struct {
	ID              string       `json:"id"`
	Type            string       `json:"type"`
	Amount          float64      `json:"amount"`
	Description     string       `json:"description"`
	Category        *CategoryRef `json:"category,omitempty"`
	TransactionDate Date         `json:"transactionDate"`
}

// CategoryName returns the category label, empty when the server omitted it.
func (t *TransactionResponse) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}

// SummaryResponse is the server-computed current-month totals
type SummaryResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
	Year    int     `json:"year,omitempty"`
	Month   int     `json:"month,omitempty"`
}
