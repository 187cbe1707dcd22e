package insights

import (
	"fmt"
	"strings"

	"ledgerlens-server/src/models"
)

const (
	defaultRuleConfidence = 0.92

	largeDepositThreshold  = 50000
	largeDepositConfidence = 0.8

	genericPaymentConfidence = 0.6

	// Auto-rule categories below this confidence are eligible for reclassification.
	ReclassifyThreshold = 0.75
)

type keywordRule struct {
	category   string
	keywords   []string
	confidence float64
}

// categoryRules is evaluated in order; the first rule with any matching keyword wins.
var categoryRules = []keywordRule{
	{category: CategoryEntertainment, keywords: []string{"netflix", "cinema", "movie", "theatre", "spotify", "concert"}},
	{category: CategoryTransport, keywords: []string{"uber", "careem", "taxi", "metro", "transport", "fuel", "petrol", "parking"}},
	{category: CategoryGroceries, keywords: []string{"carrefour", "spinneys", "supermarket", "grocery", "waitrose", "lulu"}},
	{category: CategoryUtilities, keywords: []string{"dewa", "etisalat", "du", "water", "electric", "utility", "internet"}},
	{category: CategoryRestaurants, keywords: []string{"restaurant", "zuma", "eatery", "food", "cafe", "coffee", "dining", "kitchen"}},
	{category: CategoryTravel, keywords: []string{"emirates", "hotel", "flight", "travel", "booking", "airbnb"}},
	{category: CategoryShopping, keywords: []string{"mall", "boutique", "store", "marketplace", "retail", "fashion", "apparel"}},
	{category: CategoryHealthcare, keywords: []string{"hospital", "clinic", "pharmacy", "medical", "health"}},
	{category: CategoryFees, keywords: []string{"fee", "charge", "service fee", "maintenance"}},
	{category: CategoryOther, keywords: []string{"subscription", "plan", "membership", "school", "university", "course", "tuition", "learning"}},
}

func (r keywordRule) match(text string) (string, bool) {
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// InferCategory classifies free text (and amount) into a category.
func InferCategory(description, merchant string, amount float64) models.CategoryResult {
	text := strings.TrimSpace(strings.ToLower(description + " " + merchant))
	if text == "" {
		return models.CategoryResult{Reason: "No description or merchant available"}
	}

	if amount >= largeDepositThreshold && strings.Contains(text, "deposit") {
		return matched(CategoryInvestment, largeDepositConfidence,
			fmt.Sprintf("Large transfer (>= %s %s) flagged as investment", BaseCurrency, formatWhole(largeDepositThreshold)))
	}

	for _, rule := range categoryRules {
		kw, ok := rule.match(text)
		if !ok {
			continue
		}
		confidence := rule.confidence
		if confidence == 0 {
			confidence = defaultRuleConfidence
		}
		return matched(rule.category, confidence, fmt.Sprintf("Matched keyword %q", kw))
	}

	if strings.Contains(text, "payment to") {
		return matched(CategoryOther, genericPaymentConfidence, "Generic payment detected")
	}

	return models.CategoryResult{Reason: "No rule matched"}
}

func matched(category string, confidence float64, reason string) models.CategoryResult {
	return models.CategoryResult{Category: &category, Confidence: confidence, Reason: reason}
}

// needsReclassification reports whether the rule-based categorizer may touch t.
// Manual and AI-confirmed categories are never eligible.
func needsReclassification(t models.Transaction) bool {
	if strings.TrimSpace(t.Category) == "" {
		return true
	}
	switch t.CategorySource {
	case "", models.CategorySourceSeed:
		return true
	case models.CategorySourceAutoRule:
		return t.CategoryConfidence < ReclassifyThreshold
	default:
		return false
	}
}

// PlanCategoryUpdates runs the categorizer over a snapshot and returns the updates
// that should be written. Re-running it on the updated snapshot yields nothing.
func PlanCategoryUpdates(transactions []models.Transaction) []models.CategoryUpdate {
	updates := []models.CategoryUpdate{}
	for _, t := range transactions {
		if !needsReclassification(t) {
			continue
		}
		result := InferCategory(t.Description, t.Merchant, t.Amount)
		if result.Category == nil {
			continue
		}
		if t.Category == *result.Category && t.CategoryConfidence >= result.Confidence {
			continue
		}
		updates = append(updates, models.CategoryUpdate{
			ID:                 t.ID,
			Category:           *result.Category,
			CategorySource:     models.CategorySourceAutoRule,
			CategoryConfidence: result.Confidence,
			CategoryReason:     result.Reason,
		})
	}
	return updates
}
