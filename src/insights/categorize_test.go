package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens-server/src/models"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name        string
		description string
		merchant    string
		amount      float64
		want        string
		confidence  float64
		reason      string
	}{
		{"keyword in description", "Carrefour City Centre", "", 120, CategoryGroceries, 0.92, `Matched keyword "carrefour"`},
		{"keyword in merchant", "POS purchase", "Spinneys", 80, CategoryGroceries, 0.92, `Matched keyword "spinneys"`},
		{"case insensitive", "NETFLIX.COM", "", 55, CategoryEntertainment, 0.92, `Matched keyword "netflix"`},
		{"earlier rule wins", "Netflix then Uber", "", 40, CategoryEntertainment, 0.92, `Matched keyword "netflix"`},
		{"large deposit", "Cash deposit", "", 50000, CategoryInvestment, 0.8, "Large transfer (>= AED 50,000) flagged as investment"},
		{"generic payment", "Payment to John", "", 300, CategoryOther, 0.6, "Generic payment detected"},
		{"fees", "Monthly service fee", "", 25, CategoryFees, 0.92, `Matched keyword "fee"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCategory(tt.description, tt.merchant, tt.amount)
			require.NotNil(t, got.Category)
			assert.Equal(t, tt.want, *got.Category)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestInferCategory_NoMatch(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		got := InferCategory("  ", "", 10)
		assert.Nil(t, got.Category)
		assert.Zero(t, got.Confidence)
		assert.Equal(t, "No description or merchant available", got.Reason)
	})

	t.Run("deposit below threshold", func(t *testing.T) {
		got := InferCategory("Cash deposit", "", 49999.99)
		assert.Nil(t, got.Category)
		assert.Equal(t, "No rule matched", got.Reason)
	})

	t.Run("unknown merchant", func(t *testing.T) {
		got := InferCategory("XYZ Corp", "", 10)
		assert.Nil(t, got.Category)
	})
}

func TestPlanCategoryUpdates(t *testing.T) {
	txs := []models.Transaction{
		{ID: "blank", Description: "Carrefour"},
		{ID: "seed", Description: "Uber trip", Category: CategoryOther, CategorySource: models.CategorySourceSeed},
		{ID: "weak", Description: "Cinema tickets", Category: CategoryOther, CategorySource: models.CategorySourceAutoRule, CategoryConfidence: 0.5},
		{ID: "strong", Description: "Cinema tickets", Category: CategoryOther, CategorySource: models.CategorySourceAutoRule, CategoryConfidence: 0.9},
		{ID: "manual", Description: "Cinema tickets", Category: CategoryShopping, CategorySource: models.CategorySourceManual},
		{ID: "ai", Description: "Cinema tickets", Category: CategoryShopping, CategorySource: models.CategorySourceAI},
		{ID: "unmatched", Description: "XYZ Corp"},
	}

	updates := PlanCategoryUpdates(txs)

	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
		assert.Equal(t, models.CategorySourceAutoRule, u.CategorySource)
	}
	assert.Equal(t, []string{"blank", "seed", "weak"}, ids)
	assert.Equal(t, CategoryGroceries, updates[0].Category)
	assert.Equal(t, CategoryTransport, updates[1].Category)
	assert.Equal(t, CategoryEntertainment, updates[2].Category)
}

func TestPlanCategoryUpdates_Idempotent(t *testing.T) {
	txs := []models.Transaction{
		{ID: "1", Description: "Carrefour"},
		{ID: "2", Description: "Payment to landlord"},
		{ID: "3", Description: "Careem ride", CategorySource: models.CategorySourceSeed, Category: CategoryOther},
	}

	first := PlanCategoryUpdates(txs)
	require.Len(t, first, 3)

	byID := map[string]models.CategoryUpdate{}
	for _, u := range first {
		byID[u.ID] = u
	}
	for i := range txs {
		byID[txs[i].ID].ApplyTo(&txs[i])
	}

	assert.Empty(t, PlanCategoryUpdates(txs))
}

func TestCategoryRulesUseKnownCategories(t *testing.T) {
	for _, rule := range categoryRules {
		assert.True(t, IsKnownCategory(rule.category), rule.category)
	}
	assert.True(t, IsKnownCategory(CategoryInvestment))
	assert.False(t, IsKnownCategory(CategorySubscriptions))
}
