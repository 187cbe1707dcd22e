package insights

import (
	"sort"
	"time"

	"ledgerlens-server/src/models"
)

const (
	snapshotForecasts = 5
	snapshotUnusual   = 10
	snapshotRecent    = 50
)

// SnapshotInput is everything the assistant snapshot is derived from. Stale marks
// that at least one of the reads behind it failed and its section is empty.
type SnapshotInput struct {
	Accounts     []models.Account
	Transactions []models.Transaction
	Budgets      []models.Budget
	Stale        bool
}

// BuildSnapshot assembles the JSON context handed to the chat assistant.
func BuildSnapshot(in SnapshotInput, now time.Time) models.AssistantSnapshot {
	newestFirst := make([]models.Transaction, len(in.Transactions))
	copy(newestFirst, in.Transactions)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].Date.After(newestFirst[j].Date)
	})

	forecasts := GenerateForecasts(in.Transactions, now)
	if len(forecasts) > snapshotForecasts {
		forecasts = forecasts[:snapshotForecasts]
	}

	recent := newestFirst
	if len(recent) > snapshotRecent {
		recent = recent[:snapshotRecent]
	}

	return models.AssistantSnapshot{
		GeneratedAt:        now.UTC(),
		Currency:           BaseCurrency,
		AccountCount:       len(in.Accounts),
		TransactionCount:   len(in.Transactions),
		TotalBalance:       TotalBalance(in.Accounts),
		ThisMonthSpending:  ThisMonthSpending(in.Transactions, now),
		Forecasts:          forecasts,
		SavingsSuggestions: GenerateSavingsSuggestions(in.Transactions),
		BudgetAlerts:       BuildBudgetOverview(in.Budgets, in.Transactions, now).Alerts,
		UnusualActivity:    unusualActivity(newestFirst),
		RecentTransactions: recent,
		Stale:              in.Stale,
	}
}

func unusualActivity(newestFirst []models.Transaction) []models.UnusualActivity {
	out := []models.UnusualActivity{}
	for _, t := range newestFirst {
		if t.IsUnusual == nil || !*t.IsUnusual {
			continue
		}
		out = append(out, models.UnusualActivity{
			TransactionID: t.ID,
			Date:          t.Date,
			Description:   t.Description,
			Merchant:      t.Merchant,
			Amount:        t.Amount,
			Category:      t.Category,
			Reason:        t.UnusualReason,
		})
		if len(out) == snapshotUnusual {
			break
		}
	}
	return out
}
