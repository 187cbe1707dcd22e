package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"ledgerlens-server/src/handlers"
	"ledgerlens-server/src/middleware"
)

type Deps struct {
	Store   handlers.InsightsStore
	Budgets handlers.BudgetStore
	Runner  handlers.BatchRunner
	Cache   handlers.InsightsCache
	Now     handlers.Clock
	Log     zerolog.Logger

	JWTSecret      string
	AllowedOrigins []string
	ReadOnly       bool
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recovery(d.Log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Protected routes
		r.With(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.ReadOnlyMiddleware(d.ReadOnly)).Group(func(r chi.Router) {
			// Transactions
			r.Post("/transactions/infer-category", handlers.InferCategory())

			// Analytics
			r.Get("/forecasts", handlers.GetForecasts(d.Store, d.Cache, d.Now))
			r.Get("/insights/savings", handlers.GetSavingsSuggestions(d.Store, d.Now))
			r.Get("/insights/snapshot", handlers.GetAssistantSnapshot(d.Store, d.Cache, d.Now))

			// Budget
			r.Get("/budgets/status", handlers.GetBudgetStatus(d.Store, d.Now))
			r.Put("/budgets", handlers.SaveBudgets(d.Budgets, d.Cache))
		})

		// Super Admin Routes
		r.With(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.SuperAdminMiddleware).Group(func(r chi.Router) {
			// Batch passes
			r.Post("/admin/transactions/recategorize", handlers.RecategorizeTransactions(d.Runner))
			r.Post("/admin/transactions/detect-unusual", handlers.DetectUnusualTransactions(d.Runner))

			// Cache
			r.Post("/admin/cache/clear", handlers.ClearCache(d.Cache))
		})
	})

	return r
}
