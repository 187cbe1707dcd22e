// Command enrich runs the batch enrichment passes once, for use from cron.
//
//	enrich recategorize|detect-unusual|all
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"ledgerlens-server/src/batch"
	"ledgerlens-server/src/config"
	"ledgerlens-server/src/db"
	sqldb "ledgerlens-server/src/db/sql"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/models"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: enrich recategorize|detect-unusual|all")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.NewConsole(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Args[1]); err != nil {
		log.Error().Err(err).Msg("enrich failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger, command string) error {
	passes, err := selectPasses(command)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	runner := batch.NewRunner(sqldb.NewStore(pool), batch.Options{
		BatchSize:          cfg.BatchSize,
		RecategorizeLimit:  cfg.RecategorizeLimit,
		AnomalyContextDays: cfg.AnomalyContextDays,
		AnomalyRecheckDays: cfg.AnomalyRecheckDays,
	}, log)

	results := map[string]models.BatchResult{}
	for _, pass := range passes {
		var result models.BatchResult
		switch pass {
		case batch.PassRecategorize:
			result, err = runner.Recategorize(ctx)
		case batch.PassDetectUnusual:
			result, err = runner.DetectUnusual(ctx)
		}
		results[pass] = result
		if err != nil {
			printResults(results)
			return err
		}
	}
	printResults(results)
	return nil
}

// selectPasses maps the command to passes. Categories run first so the anomaly
// pass sees fresh categories.
func selectPasses(command string) ([]string, error) {
	switch command {
	case batch.PassRecategorize:
		return []string{batch.PassRecategorize}, nil
	case batch.PassDetectUnusual:
		return []string{batch.PassDetectUnusual}, nil
	case "all":
		return []string{batch.PassRecategorize, batch.PassDetectUnusual}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
}

func printResults(results map[string]models.BatchResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)
}
