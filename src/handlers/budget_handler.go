package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"ledgerlens-server/src/insights"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/middleware"
	"ledgerlens-server/src/models"
)

// GetBudgetStatus returns month-to-date spend against each budget, with the
// six-month spend trend.
func GetBudgetStatus(store InsightsStore, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		log := logger.FromContext(r.Context()).With().Str("user_id", userID).Logger()
		t := now()

		budgets, err := store.ListBudgetsForUser(r.Context(), userID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get budgets")
			middleware.WriteError(w, http.StatusInternalServerError, "failed to get budgets")
			return
		}

		_, transactions, err := userTransactions(r.Context(), store, userID, "", insights.LookbackStart(t, insights.TrendMonths-1))
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch transactions for budgets")
			middleware.WriteError(w, http.StatusInternalServerError, "failed to fetch transactions")
			return
		}

		middleware.WriteJSON(w, http.StatusOK, insights.BuildBudgetOverview(budgets, transactions, t))
	}
}

// SaveBudgets sets monthly limits from a category -> amount map. Existing rows are
// updated, new ones are only created for positive amounts.
func SaveBudgets(store BudgetStore, cache InsightsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		log := logger.FromContext(r.Context()).With().Str("user_id", userID).Logger()

		var req map[string]float64
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn().Err(err).Msg("failed to decode save budgets request body")
			middleware.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if len(req) == 0 {
			middleware.WriteError(w, http.StatusBadRequest, "no budgets to save")
			return
		}

		limits := make(map[string]float64, len(req))
		for raw, amount := range req {
			category := strings.ToLower(strings.TrimSpace(raw))
			if !insights.IsTrackedCategory(category) {
				middleware.WriteError(w, http.StatusBadRequest, "unknown budget category: "+raw)
				return
			}
			if _, dup := limits[category]; dup {
				middleware.WriteError(w, http.StatusBadRequest, "duplicate budget category: "+category)
				return
			}
			if amount < 0 {
				middleware.WriteError(w, http.StatusBadRequest, "budget amount must be zero or more")
				return
			}
			limits[category] = amount
		}

		// Tracked order keeps writes deterministic.
		budgets := make([]models.Budget, 0, len(limits))
		for _, category := range insights.TrackedCategories {
			if amount, ok := limits[category]; ok {
				budgets = append(budgets, models.Budget{UserID: userID, Category: category, MonthlyLimit: amount})
			}
		}

		saved, err := store.SaveBudgets(r.Context(), userID, budgets)
		if err != nil {
			log.Error().Err(err).Msg("failed to save budgets")
			middleware.WriteError(w, http.StatusInternalServerError, "failed to save budgets")
			return
		}
		cleared := cache.ClearUser(userID)

		log.Info().Int("saved", saved).Int("cache_cleared", cleared).Msg("saved budgets")
		middleware.WriteJSON(w, http.StatusOK, map[string]int{"saved": saved})
	}
}
