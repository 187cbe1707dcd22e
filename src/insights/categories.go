// Package insights holds the transaction intelligence pipeline: the rule-based
// categorizer, the anomaly detector, the spend forecaster and the savings advisor.
// Everything here is a pure function of its inputs; the reference time is always
// passed in by the caller.
package insights

const (
	CategoryGroceries     = "groceries"
	CategoryRestaurants   = "restaurants"
	CategoryShopping      = "shopping"
	CategoryEntertainment = "entertainment"
	CategoryUtilities     = "utilities"
	CategoryTransport     = "transport"
	CategoryHealthcare    = "healthcare"
	CategoryTravel        = "travel"
	CategoryTransfer      = "transfer"
	CategorySalary        = "salary"
	CategoryInvestment    = "investment"
	CategoryFees          = "fees"
	CategoryOther         = "other"
	CategoryUncategorized = "uncategorized"

	// Not part of the closed set, but older seed data carries it and the
	// subscription heuristic still recognizes it.
	CategorySubscriptions = "subscriptions"
)

var knownCategories = map[string]struct{}{
	CategoryGroceries:     {},
	CategoryRestaurants:   {},
	CategoryShopping:      {},
	CategoryEntertainment: {},
	CategoryUtilities:     {},
	CategoryTransport:     {},
	CategoryHealthcare:    {},
	CategoryTravel:        {},
	CategoryTransfer:      {},
	CategorySalary:        {},
	CategoryInvestment:    {},
	CategoryFees:          {},
	CategoryOther:         {},
	CategoryUncategorized: {},
}

func IsKnownCategory(category string) bool {
	_, ok := knownCategories[category]
	return ok
}

// BaseCurrency is the currency every amount is reported in.
const BaseCurrency = "AED"

// USDToBaseRate is the single fixed conversion used for USD account balances.
const USDToBaseRate = 3.67
