package insights

import (
	"math"
	"sort"
	"time"

	"ledgerlens-server/src/models"
)

// DefaultLookbackMonths is how far back the forecaster reads history.
const DefaultLookbackMonths = 6

// Weights for the last, second-last and third-last completed months.
var forecastWeights = [3]float64{0.5, 0.3, 0.2}

const trendBand = 0.10

// GenerateForecasts predicts next-month spend per category from the three most
// recently completed months before now, using the default lookback.
func GenerateForecasts(transactions []models.Transaction, now time.Time) []models.ForecastResult {
	return GenerateForecastsWindow(transactions, now, DefaultLookbackMonths)
}

// GenerateForecastsWindow is GenerateForecasts with an explicit lookback in months.
// A lookback shorter than three months starves the older basis months.
func GenerateForecastsWindow(transactions []models.Transaction, now time.Time, lookbackMonths int) []models.ForecastResult {
	if lookbackMonths <= 0 {
		lookbackMonths = DefaultLookbackMonths
	}
	windowStart := monthStart(now, -lookbackMonths)

	// category -> month key -> total
	history := map[string]map[string]float64{}
	var order []string
	for _, t := range transactions {
		if !t.IsDebit() || t.Amount <= 0 || t.Date.IsZero() {
			continue
		}
		d := t.Date.In(now.Location())
		if d.Before(windowStart) {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = CategoryUncategorized
		}
		if _, ok := history[cat]; !ok {
			history[cat] = map[string]float64{}
			order = append(order, cat)
		}
		history[cat][monthKey(d)] += t.Amount
	}

	var basis [3]string
	for i := range basis {
		basis[i] = monthKey(monthStart(now, -(i + 1)))
	}

	forecasts := []models.ForecastResult{}
	for _, cat := range order {
		var values [3]float64
		for i, key := range basis {
			values[i] = history[cat][key]
		}

		var prediction float64
		dataPoints := 0
		for i, v := range values {
			prediction += v * forecastWeights[i]
			if v > 0 {
				dataPoints++
			}
		}
		if prediction <= 0 {
			continue
		}

		forecasts = append(forecasts, models.ForecastResult{
			Category:        cat,
			PredictedAmount: math.Round(prediction),
			Confidence:      forecastConfidence(dataPoints),
			Trend:           classifyTrend(values[0], values[1]),
		})
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		if forecasts[i].PredictedAmount != forecasts[j].PredictedAmount {
			return forecasts[i].PredictedAmount > forecasts[j].PredictedAmount
		}
		return forecasts[i].Category < forecasts[j].Category
	})
	return forecasts
}

// classifyTrend compares the last completed month against the one before it.
func classifyTrend(last, previous float64) models.Trend {
	switch {
	case last > previous*(1+trendBand):
		return models.TrendUp
	case last < previous*(1-trendBand):
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

func forecastConfidence(dataPoints int) float64 {
	switch dataPoints {
	case 3:
		return 0.8
	case 2:
		return 0.6
	default:
		return 0.3
	}
}
