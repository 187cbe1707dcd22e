package handlers

import (
	"context"
	"time"

	"ledgerlens-server/src/models"
)

// InsightsStore is the read side the per-user analytics need.
type InsightsStore interface {
	ListAccountsForUser(ctx context.Context, userID string) ([]models.Account, error)
	ListTransactionsForAccounts(ctx context.Context, accountIDs []string, since time.Time) ([]models.Transaction, error)
	ListBudgetsForUser(ctx context.Context, userID string) ([]models.Budget, error)
}

// BudgetStore is the write side of the budget screen.
type BudgetStore interface {
	SaveBudgets(ctx context.Context, userID string, limits []models.Budget) (int, error)
}

type BatchRunner interface {
	Recategorize(ctx context.Context) (models.BatchResult, error)
	DetectUnusual(ctx context.Context) (models.BatchResult, error)
}

type InsightsCache interface {
	GetForecasts(userID string, months int, accountID string) ([]models.ForecastResult, bool)
	SetForecasts(userID string, months int, accountID string, forecasts []models.ForecastResult)
	GetSnapshot(userID string) (models.AssistantSnapshot, bool)
	SetSnapshot(userID string, snapshot models.AssistantSnapshot)
	ClearUser(userID string) int
	ClearAll() int
}

// Clock supplies the reference time for every date-relative computation.
type Clock func() time.Time

func accountIDs(accounts []models.Account) []string {
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

// userTransactions loads the user's accounts and their transactions since the
// given time. A non-empty accountID narrows to that account, which must belong
// to the user.
func userTransactions(ctx context.Context, store InsightsStore, userID, accountID string, since time.Time) ([]models.Account, []models.Transaction, error) {
	accounts, err := store.ListAccountsForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	ids := accountIDs(accounts)
	if accountID != "" {
		ids = nil
		for _, a := range accounts {
			if a.ID == accountID {
				ids = []string{a.ID}
			}
		}
		if ids == nil {
			return accounts, nil, errAccountNotFound
		}
	}
	if len(ids) == 0 {
		return accounts, []models.Transaction{}, nil
	}
	transactions, err := store.ListTransactionsForAccounts(ctx, ids, since)
	if err != nil {
		return accounts, nil, err
	}
	return accounts, transactions, nil
}
