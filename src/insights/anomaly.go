package insights

import (
	"fmt"
	"math"
	"time"

	"ledgerlens-server/src/models"
)

const (
	highValueThreshold = 5000

	outlierMinSamples  = 5
	outlierMultiplier  = 2.5
	outlierAbsoluteMin = 100

	// AnomalyContextDays bounds the history used as comparison baseline.
	AnomalyContextDays = 90
	// AnomalyRecheckDays bounds which transactions are re-evaluated on each pass.
	AnomalyRecheckDays = 30
)

// DetectUnusual decides whether t stands out against history. history may
// contain t itself. Checks run in order and the first hit wins.
func DetectUnusual(t models.Transaction, history []models.Transaction) models.UnusualResult {
	if t.Amount > highValueThreshold {
		return unusual("High value transaction (> 5,000)")
	}

	if isDuplicate(t, history) {
		return unusual("Potential duplicate transaction")
	}

	var (
		count int
		total float64
	)
	for _, h := range history {
		if h.ID == t.ID || h.Category != t.Category || h.Amount <= 0 {
			continue
		}
		count++
		total += h.Amount
	}
	if count >= outlierMinSamples {
		avg := safeDiv(total, float64(count))
		if t.Amount > avg*outlierMultiplier && t.Amount > outlierAbsoluteMin {
			return unusual(fmt.Sprintf("Unusually high for %s (Avg: %.0f)", t.Category, math.Round(avg)))
		}
	}

	return models.UnusualResult{}
}

// isDuplicate matches on amount, merchant or description, and calendar day.
// Identical repeat purchases on the same day are flagged too.
func isDuplicate(t models.Transaction, history []models.Transaction) bool {
	if t.Date.IsZero() {
		return false
	}
	day := dayKey(t.Date)
	for _, h := range history {
		if h.ID == t.ID || h.Date.IsZero() || h.Amount != t.Amount {
			continue
		}
		if h.Merchant != t.Merchant && h.Description != t.Description {
			continue
		}
		if dayKey(h.Date) == day {
			return true
		}
	}
	return false
}

func unusual(reason string) models.UnusualResult {
	return models.UnusualResult{IsUnusual: true, Reason: &reason}
}

// PlanUnusualUpdates re-evaluates every transaction dated within the recheck
// window before now, using the whole window as history. Only changed
// flags (or flags never set) produce an update. processed is the number of
// transactions re-evaluated.
func PlanUnusualUpdates(window []models.Transaction, now time.Time, recheckDays int) (processed int, updates []models.UnusualUpdate) {
	cutoff := now.AddDate(0, 0, -recheckDays)
	updates = []models.UnusualUpdate{}
	for _, t := range window {
		if t.Date.IsZero() || t.Date.Before(cutoff) {
			continue
		}
		processed++
		result := DetectUnusual(t, window)
		if t.IsUnusual != nil && *t.IsUnusual == result.IsUnusual {
			continue
		}
		updates = append(updates, models.UnusualUpdate{
			ID:            t.ID,
			IsUnusual:     result.IsUnusual,
			UnusualReason: result.Reason,
		})
	}
	return processed, updates
}
