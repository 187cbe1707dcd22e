package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerlens-server/src/models"
)

// Store binds the query functions to a pool so they can be handed to the batch
// runner and the handlers as an interface.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListRecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	return ListRecentTransactions(ctx, s.pool, limit)
}

func (s *Store) ListTransactionsSince(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	return ListTransactionsSince(ctx, s.pool, since)
}

func (s *Store) ListTransactionsForAccounts(ctx context.Context, accountIDs []string, since time.Time) ([]models.Transaction, error) {
	return ListTransactionsForAccounts(ctx, s.pool, accountIDs, since)
}

func (s *Store) UpdateCategories(ctx context.Context, updates []models.CategoryUpdate) error {
	return UpdateTransactionCategories(ctx, s.pool, updates)
}

func (s *Store) UpdateUnusualFlags(ctx context.Context, updates []models.UnusualUpdate) error {
	return UpdateTransactionUnusualFlags(ctx, s.pool, updates)
}

func (s *Store) ListAccountsForUser(ctx context.Context, userID string) ([]models.Account, error) {
	return GetAccountsForUser(ctx, s.pool, userID)
}

func (s *Store) ListBudgetsForUser(ctx context.Context, userID string) ([]models.Budget, error) {
	return GetAllBudgetsForUser(ctx, s.pool, userID)
}

func (s *Store) SaveBudgets(ctx context.Context, userID string, limits []models.Budget) (int, error) {
	return SaveBudgetLimits(ctx, s.pool, userID, limits)
}
