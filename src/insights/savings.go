package insights

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"ledgerlens-server/src/models"
)

const (
	maxSuggestions = 3

	subscriptionMinOccurrences = 2

	feeThreshold = 50

	diningThreshold      = 1000
	diningGroceryRatio   = 2
	diningSavingsPercent = 0.3

	rideThreshold      = 1500
	rideSavingsPercent = 0.2
)

// Unicode space separators count as whitespace.
var whitespace = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}]+`)

type subscriptionGroup struct {
	label  string
	amount float64
	count  int
}

// GenerateSavingsSuggestions runs every savings heuristic over the history and
// returns the strongest suggestions, largest potential savings first.
func GenerateSavingsSuggestions(transactions []models.Transaction) []models.SavingSuggestion {
	var suggestions []models.SavingSuggestion
	suggestions = append(suggestions, subscriptionSuggestions(transactions)...)

	if s, ok := feeSuggestion(transactions); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := diningSuggestion(transactions); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := rideSuggestion(transactions); ok {
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].PotentialSavings > suggestions[j].PotentialSavings
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if suggestions == nil {
		suggestions = []models.SavingSuggestion{}
	}
	return suggestions
}

func isSubscriptionCandidate(t models.Transaction) bool {
	switch t.Category {
	case CategoryEntertainment, CategorySubscriptions:
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), "subscription")
}

// subscriptionSuggestions groups candidates by payee and exact amount; groups are
// reported in the order they were first seen.
func subscriptionSuggestions(transactions []models.Transaction) []models.SavingSuggestion {
	groups := map[string]*subscriptionGroup{}
	var order []string
	for _, t := range transactions {
		if !isSubscriptionCandidate(t) {
			continue
		}
		label := t.Merchant
		if label == "" {
			label = t.Description
		}
		key := label + "-" + formatPlain(t.Amount)
		g, ok := groups[key]
		if !ok {
			g = &subscriptionGroup{label: label, amount: t.Amount}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	var out []models.SavingSuggestion
	for _, key := range order {
		g := groups[key]
		if g.count < subscriptionMinOccurrences {
			continue
		}
		out = append(out, models.SavingSuggestion{
			ID:               "sub-" + whitespace.ReplaceAllString(g.label, "-"),
			Title:            "Review Subscription: " + g.label,
			Description:      fmt.Sprintf("You have a recurring payment of %s %s. Do you still use this?", BaseCurrency, formatPlain(g.amount)),
			PotentialSavings: g.amount,
			Type:             models.SuggestionSubscription,
			Confidence:       models.ConfidenceHigh,
		})
	}
	return out
}

func sumCategory(transactions []models.Transaction, category string) float64 {
	var total float64
	for _, t := range transactions {
		if t.Category == category {
			total += t.Amount
		}
	}
	return total
}

func feeSuggestion(transactions []models.Transaction) (models.SavingSuggestion, bool) {
	total := sumCategory(transactions, CategoryFees)
	if total <= feeThreshold {
		return models.SavingSuggestion{}, false
	}
	return models.SavingSuggestion{
		ID:    "reduce-fees",
		Title: "Reduce Bank Fees",
		Description: fmt.Sprintf("You spent %s %.0f on fees recently. Check if you can switch accounts or avoid ATM charges.",
			BaseCurrency, total),
		PotentialSavings: total,
		Type:             models.SuggestionFees,
		Confidence:       models.ConfidenceMedium,
	}, true
}

func diningSuggestion(transactions []models.Transaction) (models.SavingSuggestion, bool) {
	dining := sumCategory(transactions, CategoryRestaurants)
	groceries := sumCategory(transactions, CategoryGroceries)
	if dining <= groceries*diningGroceryRatio || dining <= diningThreshold {
		return models.SavingSuggestion{}, false
	}
	return models.SavingSuggestion{
		ID:    "cook-more",
		Title: "Cook at Home",
		Description: fmt.Sprintf("Your dining spend (%s %.0f) is significantly higher than groceries. Cooking more could save you money.",
			BaseCurrency, dining),
		PotentialSavings: math.Round(dining * diningSavingsPercent),
		Type:             models.SuggestionHabit,
		Confidence:       models.ConfidenceMedium,
	}, true
}

func rideSuggestion(transactions []models.Transaction) (models.SavingSuggestion, bool) {
	var rides float64
	for _, t := range transactions {
		if t.Category != CategoryTransport {
			continue
		}
		desc := strings.ToLower(t.Description)
		if strings.Contains(desc, "uber") || strings.Contains(desc, "careem") {
			rides += t.Amount
		}
	}
	if rides <= rideThreshold {
		return models.SavingSuggestion{}, false
	}
	return models.SavingSuggestion{
		ID:    "transport-costs",
		Title: "High Ride-Sharing Costs",
		Description: fmt.Sprintf("You spent %s %.0f on rides. Consider a monthly pass or car rental/public transport if feasible.",
			BaseCurrency, rides),
		PotentialSavings: math.Round(rides * rideSavingsPercent),
		Type:             models.SuggestionHabit,
		Confidence:       models.ConfidenceMedium,
	}, true
}
