package models

import "time"

// CategoryResult is the categorizer's decision. Category is nil when no rule matched.
type CategoryResult struct {
	Category   *string `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// UnusualResult is the anomaly detector's decision. Reason is nil when not unusual.
type UnusualResult struct {
	IsUnusual bool    `json:"is_unusual"`
	Reason    *string `json:"reason"`
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type ForecastResult struct {
	Category        string  `json:"category"`
	PredictedAmount float64 `json:"predicted_amount"`
	Confidence      float64 `json:"confidence"`
	Trend           Trend   `json:"trend"`
}

type SuggestionType string

const (
	SuggestionSubscription SuggestionType = "subscription"
	SuggestionFees         SuggestionType = "fees"
	SuggestionHabit        SuggestionType = "habit"
	SuggestionGeneral      SuggestionType = "general"
)

type SuggestionConfidence string

const (
	ConfidenceHigh   SuggestionConfidence = "high"
	ConfidenceMedium SuggestionConfidence = "medium"
	ConfidenceLow    SuggestionConfidence = "low"
)

type SavingSuggestion struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	PotentialSavings float64              `json:"potential_savings"`
	Type             SuggestionType       `json:"type"`
	Confidence       SuggestionConfidence `json:"confidence"`
}

// UnusualActivity is a flagged transaction as presented to the assistant.
type UnusualActivity struct {
	TransactionID string    `json:"transaction_id"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Merchant      string    `json:"merchant,omitempty"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	Reason        string    `json:"reason"`
}

// AssistantSnapshot is the precomputed context handed to the chat assistant.
type AssistantSnapshot struct {
	GeneratedAt        time.Time          `json:"generated_at"`
	Currency           string             `json:"currency"`
	AccountCount       int                `json:"account_count"`
	TransactionCount   int                `json:"transaction_count"`
	TotalBalance       float64            `json:"total_balance"`
	ThisMonthSpending  float64            `json:"this_month_spending"`
	Forecasts          []ForecastResult   `json:"forecasts"`
	SavingsSuggestions []SavingSuggestion `json:"savings_suggestions"`
	BudgetAlerts       []BudgetStatus     `json:"budget_alerts"`
	UnusualActivity    []UnusualActivity  `json:"unusual_activity"`
	RecentTransactions []Transaction      `json:"recent_transactions"`
	Stale              bool               `json:"stale"`
}
