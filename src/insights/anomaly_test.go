package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens-server/src/models"
)

func TestDetectUnusual_HighValue(t *testing.T) {
	at := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	got := DetectUnusual(models.Transaction{ID: "a", Amount: 5000, Date: at}, nil)
	assert.False(t, got.IsUnusual)
	assert.Nil(t, got.Reason)

	got = DetectUnusual(models.Transaction{ID: "b", Amount: 5000.01, Date: at}, nil)
	require.True(t, got.IsUnusual)
	assert.Equal(t, "High value transaction (> 5,000)", *got.Reason)
}

func TestDetectUnusual_Duplicate(t *testing.T) {
	morning := models.Transaction{ID: "1", Amount: 42, Merchant: "Zuma", Description: "Dinner", Date: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)}
	evening := models.Transaction{ID: "2", Amount: 42, Merchant: "Zuma", Description: "Lunch", Date: time.Date(2024, 5, 2, 22, 0, 0, 0, time.UTC)}
	history := []models.Transaction{morning, evening}

	for _, tx := range history {
		got := DetectUnusual(tx, history)
		require.True(t, got.IsUnusual, tx.ID)
		assert.Equal(t, "Potential duplicate transaction", *got.Reason)
	}

	t.Run("matching description only", func(t *testing.T) {
		other := evening
		other.Merchant = "Other"
		other.Description = morning.Description
		assert.True(t, DetectUnusual(morning, []models.Transaction{morning, other}).IsUnusual)
	})

	t.Run("next day", func(t *testing.T) {
		later := evening
		later.Date = evening.Date.Add(4 * time.Hour)
		assert.False(t, DetectUnusual(morning, []models.Transaction{morning, later}).IsUnusual)
	})

	t.Run("different amount", func(t *testing.T) {
		other := evening
		other.Amount = 43
		assert.False(t, DetectUnusual(morning, []models.Transaction{morning, other}).IsUnusual)
	})
}

func TestDetectUnusual_OutlierReasonFormat(t *testing.T) {
	base := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	var history []models.Transaction
	for i := 0; i < 5; i++ {
		history = append(history, models.Transaction{
			ID:       fmt.Sprintf("h%d", i),
			Category: CategoryShopping,
			Amount:   1234.5,
			Date:     base.AddDate(0, 0, i),
		})
	}
	tx := models.Transaction{ID: "x", Category: CategoryShopping, Amount: 4000, Date: base.AddDate(0, 0, 20)}

	got := DetectUnusual(tx, append(history, tx))
	require.True(t, got.IsUnusual)
	assert.Equal(t, "Unusually high for shopping (Avg: 1235)", *got.Reason)
}

func TestDetectUnusual_CategoryOutlier(t *testing.T) {
	base := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	history := make([]models.Transaction, 0, 6)
	for i := 0; i < 5; i++ {
		history = append(history, models.Transaction{
			ID:       fmt.Sprintf("h%d", i),
			Category: CategoryGroceries,
			Amount:   100,
			Date:     base.AddDate(0, 0, i),
		})
	}
	tx := models.Transaction{ID: "x", Category: CategoryGroceries, Amount: 300, Date: base.AddDate(0, 0, 20)}
	history = append(history, tx)

	got := DetectUnusual(tx, history)
	require.True(t, got.IsUnusual)
	assert.Equal(t, "Unusually high for groceries (Avg: 100)", *got.Reason)

	t.Run("too few samples", func(t *testing.T) {
		assert.False(t, DetectUnusual(tx, history[1:]).IsUnusual)
	})

	t.Run("within multiplier", func(t *testing.T) {
		small := tx
		small.Amount = 250
		assert.False(t, DetectUnusual(small, history).IsUnusual)
	})
}

func TestPlanUnusualUpdates(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	flagged, clean := true, false

	window := []models.Transaction{
		{ID: "old", Amount: 9000, Date: now.AddDate(0, 0, -45)},
		{ID: "new-high", Amount: 9000, Date: now.AddDate(0, 0, -2)},
		{ID: "already-flagged", Amount: 8000, Date: now.AddDate(0, 0, -3), IsUnusual: &flagged},
		{ID: "stale-flag", Amount: 10, Date: now.AddDate(0, 0, -4), IsUnusual: &flagged, UnusualReason: "old reason"},
		{ID: "clean", Amount: 10, Description: "coffee", Date: now.AddDate(0, 0, -5), IsUnusual: &clean},
		{ID: "bad-date", Amount: 9000},
	}

	processed, updates := PlanUnusualUpdates(window, now, AnomalyRecheckDays)

	assert.Equal(t, 4, processed)
	require.Len(t, updates, 2)
	assert.Equal(t, "new-high", updates[0].ID)
	assert.True(t, updates[0].IsUnusual)
	assert.Equal(t, "stale-flag", updates[1].ID)
	assert.False(t, updates[1].IsUnusual)
	assert.Nil(t, updates[1].UnusualReason)

	for _, u := range updates {
		for i := range window {
			if window[i].ID == u.ID {
				u.ApplyTo(&window[i])
			}
		}
	}
	_, again := PlanUnusualUpdates(window, now, AnomalyRecheckDays)
	assert.Empty(t, again)
}
