package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ledgerlens-server/src/insights"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/middleware"
	"ledgerlens-server/src/util"
)

const maxForecastMonths = 24

func GetForecasts(store InsightsStore, cache InsightsCache, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		log := logger.FromContext(r.Context()).With().Str("user_id", userID).Logger()

		months := insights.DefaultLookbackMonths
		if raw := r.URL.Query().Get("months"); raw != "" {
			m, err := strconv.Atoi(raw)
			if err != nil || m < 1 || m > maxForecastMonths {
				middleware.WriteError(w, http.StatusBadRequest, "months must be between 1 and 24")
				return
			}
			months = m
		}
		accountID := r.URL.Query().Get("account_id")
		if accountID != "" && !util.ValidateUUID(accountID) {
			middleware.WriteError(w, http.StatusBadRequest, "invalid account id")
			return
		}

		if cached, ok := cache.GetForecasts(userID, months, accountID); ok {
			middleware.WriteJSON(w, http.StatusOK, cached)
			return
		}

		t := now()
		_, transactions, err := userTransactions(r.Context(), store, userID, accountID, insights.LookbackStart(t, months))
		if errors.Is(err, errAccountNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "account not found")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch transactions for forecast")
			middleware.WriteError(w, http.StatusInternalServerError, "failed to fetch transactions")
			return
		}

		forecasts := insights.GenerateForecastsWindow(transactions, t, months)
		cache.SetForecasts(userID, months, accountID, forecasts)
		middleware.WriteJSON(w, http.StatusOK, forecasts)
	}
}
