package batch

import (
	"context"
	"time"

	"ledgerlens-server/src/models"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=batch

// Store is what the batch passes need from persistence. Each Update call must
// be atomic for the slice it is given.
type Store interface {
	ListRecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	ListTransactionsSince(ctx context.Context, since time.Time) ([]models.Transaction, error)
	UpdateCategories(ctx context.Context, updates []models.CategoryUpdate) error
	UpdateUnusualFlags(ctx context.Context, updates []models.UnusualUpdate) error
}
