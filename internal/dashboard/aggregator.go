// Package dashboard merges the summary and transaction-list endpoints into a
// single view-model for the overview screen.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/barryallent/expense-tracker-app/internal/apiclient"
	"github.com/barryallent/expense-tracker-app/internal/dto"

	"golang.org/x/sync/errgroup"
)

// RecentLimit bounds the recent-transactions view.
const RecentLimit = 5

// ErrRefreshFailed is the generic condition reported when either sub-request
// fails; no partial merge is produced. The cause stays wrapped so callers can
// still detect a rejected credential.
var ErrRefreshFailed = errors.New("failed to load dashboard data")

// Summary is the merged money view. SavingsRate is derived on every refresh
// and never stored.
type Summary struct {
	Income           float64
	Expense          float64
	Balance          float64
	TransactionCount int
	SavingsRate      float64
}

// Overview is the complete dashboard view-model, rebuilt from scratch on
// every refresh.
type Overview struct {
	Summary Summary
	Recent  []dto.TransactionResponse
}

// Aggregator fetches and merges dashboard data over the authorized channel.
// It holds no state between refreshes; every invocation is independent and
// re-derives from current server data.
type Aggregator struct {
	api    *apiclient.Client
	logger *slog.Logger
}

func NewAggregator(api *apiclient.Client, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		api:    api,
		logger: logger,
	}
}

// Refresh issues the summary and transaction-list requests concurrently and
// waits for both. If either fails the whole refresh fails and the caller's
// previously displayed data stays untouched.
func (a *Aggregator) Refresh(ctx context.Context) (*Overview, error) {
	var (
		summary      dto.SummaryResponse
		transactions []dto.TransactionResponse
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.api.Get(ctx, "/transactions/summary", &summary)
	})
	g.Go(func() error {
		return a.api.Get(ctx, "/transactions", &transactions)
	})
	if err := g.Wait(); err != nil {
		a.logger.Error("dashboard refresh failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	// The server is the ordering authority; take the first entries as-is.
	recent := transactions
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	return &Overview{
		Summary: Summary{
			Income:           summary.Income,
			Expense:          summary.Expense,
			Balance:          summary.Balance,
			TransactionCount: len(transactions),
			SavingsRate:      savingsRate(summary.Balance, summary.Income),
		},
		Recent: recent,
	}, nil
}

// savingsRate is balance over income as a percentage, rounded to one decimal
// place, and 0 whenever there is no income.
func savingsRate(balance, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return math.Round(balance/income*1000) / 10
}
