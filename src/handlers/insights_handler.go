package handlers

import (
	"net/http"
	"time"

	"ledgerlens-server/src/insights"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/middleware"
	"ledgerlens-server/src/models"
)

func GetSavingsSuggestions(store InsightsStore, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		since := insights.LookbackStart(now(), insights.DefaultLookbackMonths)

		_, transactions, err := userTransactions(r.Context(), store, userID, "", since)
		if err != nil {
			l := logger.FromContext(r.Context())
			l.Error().Err(err).Str("user_id", userID).Msg("failed to fetch transactions for savings")
			middleware.WriteError(w, http.StatusInternalServerError, "failed to fetch transactions")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, insights.GenerateSavingsSuggestions(transactions))
	}
}

// GetAssistantSnapshot never fails on a store error: the affected sections are
// left empty and the snapshot is marked stale.
func GetAssistantSnapshot(store InsightsStore, cache InsightsCache, now Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		log := logger.FromContext(r.Context()).With().Str("user_id", userID).Logger()

		if cached, ok := cache.GetSnapshot(userID); ok {
			middleware.WriteJSON(w, http.StatusOK, cached)
			return
		}

		in := insights.SnapshotInput{}
		accounts, transactions, err := userTransactions(r.Context(), store, userID, "", time.Time{})
		if err != nil {
			log.Warn().Err(err).Msg("snapshot built without transactions")
			in.Stale = true
		}
		in.Accounts, in.Transactions = accounts, transactions

		budgets, err := store.ListBudgetsForUser(r.Context(), userID)
		if err != nil {
			log.Warn().Err(err).Msg("snapshot built without budgets")
			in.Stale = true
			budgets = []models.Budget{}
		}
		in.Budgets = budgets

		snapshot := insights.BuildSnapshot(in, now())
		if !snapshot.Stale {
			cache.SetSnapshot(userID, snapshot)
		}
		middleware.WriteJSON(w, http.StatusOK, snapshot)
	}
}
