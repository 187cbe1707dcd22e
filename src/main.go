package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgerlens-server/src/api"
	"ledgerlens-server/src/batch"
	"ledgerlens-server/src/config"
	"ledgerlens-server/src/db"
	sqldb "ledgerlens-server/src/db/sql"
	"ledgerlens-server/src/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("error")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	defer pool.Close()

	cache, err := db.NewInsightsCache(cfg.CacheMaxCost, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("cache init failed")
	}
	defer cache.Close()

	store := sqldb.NewStore(pool)
	runner := batch.NewRunner(store, batch.Options{
		BatchSize:          cfg.BatchSize,
		RecategorizeLimit:  cfg.RecategorizeLimit,
		AnomalyContextDays: cfg.AnomalyContextDays,
		AnomalyRecheckDays: cfg.AnomalyRecheckDays,
	}, log)
	runner.OnCommit = func() { cache.ClearAll() }

	// Router
	router := api.NewRouter(api.Deps{
		Store:          store,
		Budgets:        store,
		Runner:         runner,
		Cache:          cache,
		Now:            time.Now,
		Log:            log,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		ReadOnly:       cfg.ReadOnly,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Bool("read_only", cfg.ReadOnly).Msg("API server running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
