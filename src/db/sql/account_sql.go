package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerlens-server/src/models"
)

func GetAccountsForUser(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Account, error) {
	query := `
		SELECT id::text, user_id::text, COALESCE(name, ''), COALESCE(type, ''), COALESCE(currency, 'AED'),
			COALESCE(balance::text, ''), COALESCE(available_balance::text, ''), COALESCE(status, '')
		FROM accounts
		WHERE user_id::text = $1
		ORDER BY name
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Currency, &a.Balance, &a.AvailableBalance, &a.Status)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
