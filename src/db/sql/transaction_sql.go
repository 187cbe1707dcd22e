package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerlens-server/src/insights"
	"ledgerlens-server/src/models"
)

const transactionColumns = `
	id::text, account_id::text, date::text, COALESCE(description, ''), COALESCE(merchant, ''),
	amount::text, COALESCE(type, ''), COALESCE(category, ''), COALESCE(category_source, ''),
	category_confidence, COALESCE(category_reason, ''), is_unusual, COALESCE(unusual_reason, '')
`

var dateLayouts = []string{
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02",
}

// parseDate accepts what Postgres renders for date and timestamp columns.
// Anything else yields the zero time.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var (
			t          models.Transaction
			date       *string
			amount     *string
			txType     string
			source     string
			confidence *float64
		)
		err := rows.Scan(&t.ID, &t.AccountID, &date, &t.Description, &t.Merchant, &amount, &txType,
			&t.Category, &source, &confidence, &t.CategoryReason, &t.IsUnusual, &t.UnusualReason)
		if err != nil {
			return nil, err
		}
		if date != nil {
			t.Date = parseDate(*date)
		}
		if amount != nil {
			t.Amount, _ = insights.ParseAmount(*amount)
		}
		if confidence != nil {
			t.CategoryConfidence = *confidence
		}
		t.Type = models.TransactionType(strings.ToLower(txType))
		t.CategorySource = models.CategorySource(source)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// ListRecentTransactions returns the newest transactions across all accounts.
func ListRecentTransactions(ctx context.Context, pool *pgxpool.Pool, limit int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC LIMIT $1`
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

// ListTransactionsSince returns every transaction dated on or after since, across all accounts.
func ListTransactionsSince(ctx context.Context, pool *pgxpool.Pool, since time.Time) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE date >= $1 ORDER BY date DESC`
	rows, err := pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

// ListTransactionsForAccounts returns the accounts' transactions, newest first. A zero
// since means no lower bound.
func ListTransactionsForAccounts(ctx context.Context, pool *pgxpool.Pool, accountIDs []string, since time.Time) ([]models.Transaction, error) {
	if len(accountIDs) == 0 {
		return []models.Transaction{}, nil
	}
	var lower *time.Time
	if !since.IsZero() {
		lower = &since
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id::text = ANY($1) AND ($2::timestamptz IS NULL OR date >= $2)
		ORDER BY date DESC
	`
	rows, err := pool.Query(ctx, query, accountIDs, lower)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

// UpdateTransactionCategories writes one chunk of category updates in a single transaction.
func UpdateTransactionCategories(ctx context.Context, pool *pgxpool.Pool, updates []models.CategoryUpdate) error {
	query := `
		UPDATE transactions
		SET category = $1, category_source = $2, category_confidence = $3, category_reason = $4
		WHERE id::text = $5
	`
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(query, u.Category, string(u.CategorySource), u.CategoryConfidence, u.CategoryReason, u.ID)
		}
		return sendBatch(ctx, tx, batch)
	})
}

// UpdateTransactionUnusualFlags writes one chunk of anomaly flags in a single transaction.
func UpdateTransactionUnusualFlags(ctx context.Context, pool *pgxpool.Pool, updates []models.UnusualUpdate) error {
	query := `UPDATE transactions SET is_unusual = $1, unusual_reason = $2 WHERE id::text = $3`
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range updates {
			batch.Queue(query, u.IsUnusual, u.UnusualReason, u.ID)
		}
		return sendBatch(ctx, tx, batch)
	})
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return results.Close()
}
