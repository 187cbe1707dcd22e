package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ledgerlens-server/src/batch"
	"ledgerlens-server/src/insights"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/middleware"
	"ledgerlens-server/src/models"
	"ledgerlens-server/src/util"
)

func RecategorizeTransactions(runner BatchRunner) http.HandlerFunc {
	return runPass(runner.Recategorize, "failed to update categories")
}

func DetectUnusualTransactions(runner BatchRunner) http.HandlerFunc {
	return runPass(runner.DetectUnusual, "failed to update unusual flags")
}

func runPass(pass func(context.Context) (models.BatchResult, error), failure string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		result, err := pass(r.Context())
		if err != nil {
			var applyErr *batch.ApplyError
			if errors.As(err, &applyErr) {
				log.Error().Err(err).Int("committed", applyErr.Committed).Msg("batch pass aborted")
				middleware.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
					"error":     failure,
					"processed": result.Processed,
					"updated":   result.Updated,
				})
				return
			}
			log.Error().Err(err).Msg("batch pass failed")
			middleware.WriteError(w, http.StatusInternalServerError, "failed to fetch transactions")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, result)
	}
}

// InferCategory previews what the categorizer would assign, without touching the ledger.
func InferCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Description string          `json:"description"`
			Merchant    string          `json:"merchant"`
			Amount      json.RawMessage `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !util.ValidateFreeText(req.Description) || !util.ValidateFreeText(req.Merchant) {
			middleware.WriteError(w, http.StatusBadRequest, "description and merchant must be at most 512 characters")
			return
		}
		amount, ok := parseAmountField(req.Amount)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, "invalid amount")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, insights.InferCategory(req.Description, req.Merchant, amount))
	}
}

// parseAmountField accepts a JSON number or a numeric string; a missing amount is zero.
func parseAmountField(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return insights.ParseAmount(s)
	}
	return insights.ParseAmount(string(raw))
}
