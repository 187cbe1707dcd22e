package handlers

import (
	"net/http"

	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/middleware"
)

func ClearCache(cache InsightsCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cleared := cache.ClearAll()
		l := logger.FromContext(r.Context())
		l.Info().Int("cleared", cleared).Msg("insights cache cleared")
		middleware.WriteJSON(w, http.StatusOK, map[string]int{"cleared": cleared})
	}
}
