package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerlens-server/src/insights"
	"ledgerlens-server/src/models"
)

// GetAllBudgetsForUser reads the user's monthly limits. Limits that cannot be
// parsed are read as zero.
func GetAllBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Budget, error) {
	query := `
		SELECT id::text, user_id::text, category, COALESCE(amount::text, ''), created_at, updated_at
		FROM budgets WHERE user_id::text = $1
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var (
			b     models.Budget
			limit string
		)
		err := rows.Scan(&b.ID, &b.UserID, &b.Category, &limit, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		b.MonthlyLimit, _ = insights.ParseAmount(limit)
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetBudgetByCategory returns pgx.ErrNoRows when the user has no limit for category.
func GetBudgetByCategory(ctx context.Context, q rowQuerier, userID, category string) (*models.Budget, error) {
	query := `
		SELECT id::text, user_id::text, category, COALESCE(amount::text, ''), created_at, updated_at
		FROM budgets WHERE user_id::text = $1 AND category = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var (
		b     models.Budget
		limit string
	)
	err := q.QueryRow(ctx, query, userID, category).
		Scan(&b.ID, &b.UserID, &b.Category, &limit, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.MonthlyLimit, _ = insights.ParseAmount(limit)
	return &b, nil
}

// SaveBudgetLimits writes the limits in one transaction. A category that already
// has a row takes the new amount, zero included; a missing one is only inserted
// for a positive amount. Returns the number of rows written.
func SaveBudgetLimits(ctx context.Context, pool *pgxpool.Pool, userID string, limits []models.Budget) (int, error) {
	var saved int
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		saved = 0
		for _, l := range limits {
			existing, err := GetBudgetByCategory(ctx, tx, userID, l.Category)
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				if l.MonthlyLimit <= 0 {
					continue
				}
				_, err = tx.Exec(ctx,
					`INSERT INTO budgets (user_id, category, amount) VALUES ($1, $2, $3)`,
					userID, l.Category, l.MonthlyLimit)
				if err != nil {
					return fmt.Errorf("failed to create budget %s: %w", l.Category, err)
				}
			case err != nil:
				return fmt.Errorf("failed to get budget %s: %w", l.Category, err)
			default:
				_, err = tx.Exec(ctx,
					`UPDATE budgets SET amount = $1, updated_at = NOW() WHERE id::text = $2`,
					l.MonthlyLimit, existing.ID)
				if err != nil {
					return fmt.Errorf("failed to update budget %s: %w", l.Category, err)
				}
			}
			saved++
		}
		return nil
	})
	return saved, err
}
