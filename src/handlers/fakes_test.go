package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"ledgerlens-server/src/middleware"
	"ledgerlens-server/src/models"
)

const testUserID = "0b8f4c1e-2a2f-4f4e-9d4a-6f0c1f4d9a11"

var testNow = time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakeStore struct {
	accounts     []models.Account
	transactions []models.Transaction
	budgets      []models.Budget

	accountsErr     error
	transactionsErr error
	budgetsErr      error
	saveErr         error

	savedBudgets []models.Budget

	gotAccountIDs []string
	gotSince      time.Time
	txCalls       int
}

func (f *fakeStore) ListAccountsForUser(_ context.Context, userID string) ([]models.Account, error) {
	if f.accountsErr != nil {
		return nil, f.accountsErr
	}
	var out []models.Account
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListTransactionsForAccounts(_ context.Context, accountIDs []string, since time.Time) ([]models.Transaction, error) {
	f.txCalls++
	f.gotAccountIDs, f.gotSince = accountIDs, since
	if f.transactionsErr != nil {
		return nil, f.transactionsErr
	}
	wanted := map[string]bool{}
	for _, id := range accountIDs {
		wanted[id] = true
	}
	var out []models.Transaction
	for _, t := range f.transactions {
		if wanted[t.AccountID] && (since.IsZero() || !t.Date.Before(since)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBudgetsForUser(_ context.Context, userID string) ([]models.Budget, error) {
	if f.budgetsErr != nil {
		return nil, f.budgetsErr
	}
	return f.budgets, nil
}

func (f *fakeStore) SaveBudgets(_ context.Context, userID string, limits []models.Budget) (int, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.savedBudgets = limits
	return len(limits), nil
}

type fakeCache struct {
	forecasts map[string][]models.ForecastResult
	snapshots map[string]models.AssistantSnapshot
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		forecasts: map[string][]models.ForecastResult{},
		snapshots: map[string]models.AssistantSnapshot{},
	}
}

func forecastCacheKey(userID string, months int, accountID string) string {
	return fmt.Sprintf("%s/%d/%s", userID, months, accountID)
}

func (c *fakeCache) GetForecasts(userID string, months int, accountID string) ([]models.ForecastResult, bool) {
	f, ok := c.forecasts[forecastCacheKey(userID, months, accountID)]
	return f, ok
}

func (c *fakeCache) SetForecasts(userID string, months int, accountID string, forecasts []models.ForecastResult) {
	c.forecasts[forecastCacheKey(userID, months, accountID)] = forecasts
}

func (c *fakeCache) GetSnapshot(userID string) (models.AssistantSnapshot, bool) {
	s, ok := c.snapshots[userID]
	return s, ok
}

func (c *fakeCache) SetSnapshot(userID string, snapshot models.AssistantSnapshot) {
	c.snapshots[userID] = snapshot
}

func (c *fakeCache) ClearUser(userID string) int {
	n := 0
	for key := range c.forecasts {
		if strings.HasPrefix(key, userID+"/") {
			delete(c.forecasts, key)
			n++
		}
	}
	if _, ok := c.snapshots[userID]; ok {
		delete(c.snapshots, userID)
		n++
	}
	return n
}

func (c *fakeCache) ClearAll() int {
	n := len(c.forecasts) + len(c.snapshots)
	c.forecasts = map[string][]models.ForecastResult{}
	c.snapshots = map[string]models.AssistantSnapshot{}
	return n
}

type fakeRunner struct {
	result models.BatchResult
	err    error
}

func (f *fakeRunner) Recategorize(context.Context) (models.BatchResult, error) {
	return f.result, f.err
}

func (f *fakeRunner) DetectUnusual(context.Context) (models.BatchResult, error) {
	return f.result, f.err
}

// serve runs h as the test user.
func serve(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), testUserID, false))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func debitOn(id, accountID, category string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		ID:        id,
		AccountID: accountID,
		Type:      models.TransactionTypeDebit,
		Category:  category,
		Amount:    amount,
		Date:      date,
	}
}
