package models

import "time"

type Budget struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Category     string    `json:"category"`
	MonthlyLimit float64   `json:"monthly_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BudgetStatusLevel string

const (
	BudgetStatusOK      BudgetStatusLevel = "ok"
	BudgetStatusWarning BudgetStatusLevel = "warning"
	BudgetStatusOver    BudgetStatusLevel = "over"
)

// BudgetStatus is one row of the budget screen: month-to-date spend against the limit.
type BudgetStatus struct {
	Category string            `json:"category"`
	Limit    float64           `json:"limit"`
	Spend    float64           `json:"spend"`
	Forecast float64           `json:"forecast"`
	Percent  float64           `json:"percent"`
	Status   BudgetStatusLevel `json:"status"`
}

type BudgetOverview struct {
	Budgets          []BudgetStatus `json:"budgets"`
	Alerts           []BudgetStatus `json:"alerts"`
	TotalBudget      float64        `json:"total_budget"`
	TotalSpend       float64        `json:"total_spend"`
	TotalForecast    float64        `json:"total_forecast"`
	ProjectedSavings float64        `json:"projected_savings"`
	Trend            []MonthlySpend `json:"trend"`
}

type MonthlySpend struct {
	Month string  `json:"month"`
	Label string  `json:"label"`
	Spend float64 `json:"spend"`
}
