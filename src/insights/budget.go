package insights

import (
	"math"
	"sort"
	"strings"
	"time"

	"ledgerlens-server/src/models"
)

const (
	budgetWarningPercent = 85
	budgetOverPercent    = 100

	TrendMonths = 6
)

// TrackedCategories are always shown on the budget screen, in this order,
// whenever they have a limit or spend.
var TrackedCategories = []string{
	CategoryGroceries,
	CategoryRestaurants,
	CategoryShopping,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryTransport,
	CategoryTravel,
	CategoryHealthcare,
}

// IsTrackedCategory reports whether a limit can be set for category.
func IsTrackedCategory(category string) bool {
	for _, c := range TrackedCategories {
		if c == category {
			return true
		}
	}
	return false
}

func normalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return CategoryUncategorized
	}
	return c
}

// BuildBudgetOverview compares month-to-date debit spend with each budget and
// projects the month end from the current run rate.
func BuildBudgetOverview(budgets []models.Budget, transactions []models.Transaction, now time.Time) models.BudgetOverview {
	limits := map[string]float64{}
	for _, b := range budgets {
		limits[normalizeCategory(b.Category)] = b.MonthlyLimit
	}

	spend := map[string]float64{}
	for _, t := range transactions {
		if !t.IsDebit() || t.Date.IsZero() || !sameMonth(t.Date.In(now.Location()), now) {
			continue
		}
		spend[normalizeCategory(t.Category)] += t.Amount
	}

	daysPassed := float64(now.Day())
	totalDays := float64(daysInMonth(now))

	overview := models.BudgetOverview{
		Budgets: []models.BudgetStatus{},
		Alerts:  []models.BudgetStatus{},
	}
	for _, cat := range TrackedCategories {
		limit, spent := limits[cat], spend[cat]
		if limit <= 0 && spent <= 0 {
			continue
		}
		overview.Budgets = append(overview.Budgets, budgetStatus(cat, limit, spent, math.Round(safeDiv(spent, daysPassed)*totalDays)))
	}

	sort.SliceStable(overview.Budgets, func(i, j int) bool {
		return usage(overview.Budgets[i]) > usage(overview.Budgets[j])
	})

	for _, s := range overview.Budgets {
		overview.TotalBudget += s.Limit
		overview.TotalSpend += s.Spend
		overview.TotalForecast += s.Forecast
		if s.Status != models.BudgetStatusOK {
			overview.Alerts = append(overview.Alerts, s)
		}
	}
	overview.ProjectedSavings = math.Max(0, overview.TotalBudget-overview.TotalForecast)
	overview.Trend = MonthlySpendTrend(transactions, now, TrendMonths)
	return overview
}

func budgetStatus(category string, limit, spend, forecast float64) models.BudgetStatus {
	s := models.BudgetStatus{
		Category: category,
		Limit:    limit,
		Spend:    spend,
		Forecast: forecast,
		Status:   models.BudgetStatusOK,
	}
	// Thresholds apply to the unrounded percentage.
	percent := 0.0
	if limit > 0 {
		percent = spend / limit * 100
	}
	switch {
	case percent > budgetOverPercent:
		s.Status = models.BudgetStatusOver
	case percent > budgetWarningPercent:
		s.Status = models.BudgetStatusWarning
	}
	s.Percent = roundTo(percent, 1)
	return s
}

// usage orders rows with no limit as if the limit were one unit.
func usage(s models.BudgetStatus) float64 {
	limit := s.Limit
	if limit == 0 {
		limit = 1
	}
	return s.Spend / limit
}

// MonthlySpendTrend returns total debit spend for each of the last months
// months, oldest first, ending with the current month.
func MonthlySpendTrend(transactions []models.Transaction, now time.Time, months int) []models.MonthlySpend {
	trend := make([]models.MonthlySpend, 0, months)
	index := map[string]int{}
	for i := months - 1; i >= 0; i-- {
		m := monthStart(now, -i)
		index[monthKey(m)] = len(trend)
		trend = append(trend, models.MonthlySpend{Month: monthKey(m), Label: m.Format("Jan")})
	}
	for _, t := range transactions {
		if !t.IsDebit() || t.Date.IsZero() {
			continue
		}
		if i, ok := index[monthKey(t.Date.In(now.Location()))]; ok {
			trend[i].Spend += t.Amount
		}
	}
	return trend
}

// TotalBalance sums account balances in the base currency.
func TotalBalance(accounts []models.Account) float64 {
	var total float64
	for _, a := range accounts {
		balance, ok := ParseAmount(a.Balance)
		if !ok {
			continue
		}
		if strings.EqualFold(a.Currency, "USD") {
			balance *= USDToBaseRate
		}
		total += balance
	}
	return roundTo(total, 2)
}

// ThisMonthSpending is the debit total for the calendar month containing now.
func ThisMonthSpending(transactions []models.Transaction, now time.Time) float64 {
	var total float64
	for _, t := range transactions {
		if t.IsDebit() && !t.Date.IsZero() && sameMonth(t.Date.In(now.Location()), now) {
			total += t.Amount
		}
	}
	return roundTo(total, 2)
}
