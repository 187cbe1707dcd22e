// Package batch runs the corrective enrichment passes: it reads a snapshot from
// the store, plans the changes with the insights package and writes them back in
// fixed-size chunks.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ledgerlens-server/src/insights"
	"ledgerlens-server/src/models"
)

const (
	PassRecategorize  = "recategorize"
	PassDetectUnusual = "detect-unusual"
)

// ApplyError reports a pass that stopped part way through writing. Chunks before
// Batch were committed; Batch and everything after it were not.
type ApplyError struct {
	Pass      string
	Batch     int
	Committed int
	Err       error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s: batch %d failed after %d updates committed: %v", e.Pass, e.Batch, e.Committed, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

type Options struct {
	BatchSize          int
	RecategorizeLimit  int
	AnomalyContextDays int
	AnomalyRecheckDays int
}

func DefaultOptions() Options {
	return Options{
		BatchSize:          100,
		RecategorizeLimit:  500,
		AnomalyContextDays: insights.AnomalyContextDays,
		AnomalyRecheckDays: insights.AnomalyRecheckDays,
	}
}

type Runner struct {
	store Store
	opts  Options
	log   zerolog.Logger

	// Now is the reference time for the anomaly windows.
	Now func() time.Time
	// OnCommit runs after a pass has committed at least one chunk, even if a
	// later chunk failed.
	OnCommit func()
}

func NewRunner(store Store, opts Options, log zerolog.Logger) *Runner {
	def := DefaultOptions()
	if opts.BatchSize <= 0 {
		opts.BatchSize = def.BatchSize
	}
	if opts.RecategorizeLimit <= 0 {
		opts.RecategorizeLimit = def.RecategorizeLimit
	}
	if opts.AnomalyContextDays <= 0 {
		opts.AnomalyContextDays = def.AnomalyContextDays
	}
	if opts.AnomalyRecheckDays <= 0 {
		opts.AnomalyRecheckDays = def.AnomalyRecheckDays
	}
	return &Runner{store: store, opts: opts, log: log, Now: time.Now}
}

// Recategorize re-runs the categorizer over the most recent transactions.
func (r *Runner) Recategorize(ctx context.Context) (models.BatchResult, error) {
	log := r.log.With().Str("pass", PassRecategorize).Str("run_id", uuid.NewString()).Logger()

	transactions, err := r.store.ListRecentTransactions(ctx, r.opts.RecategorizeLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch transactions")
		return models.BatchResult{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	updates := insights.PlanCategoryUpdates(transactions)
	committed, err := applyInBatches(ctx, PassRecategorize, updates, r.opts.BatchSize, r.store.UpdateCategories)
	result := models.BatchResult{Processed: len(transactions), Updated: committed}
	r.finish(log, result, len(updates), err)
	return result, err
}

// DetectUnusual re-evaluates transactions in the recheck window against the
// wider context window.
func (r *Runner) DetectUnusual(ctx context.Context) (models.BatchResult, error) {
	log := r.log.With().Str("pass", PassDetectUnusual).Str("run_id", uuid.NewString()).Logger()

	now := r.Now()
	window, err := r.store.ListTransactionsSince(ctx, now.AddDate(0, 0, -r.opts.AnomalyContextDays))
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch transactions")
		return models.BatchResult{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	processed, updates := insights.PlanUnusualUpdates(window, now, r.opts.AnomalyRecheckDays)
	committed, err := applyInBatches(ctx, PassDetectUnusual, updates, r.opts.BatchSize, r.store.UpdateUnusualFlags)
	result := models.BatchResult{Processed: processed, Updated: committed}
	r.finish(log, result, len(updates), err)
	return result, err
}

func (r *Runner) finish(log zerolog.Logger, result models.BatchResult, planned int, err error) {
	if result.Updated > 0 && r.OnCommit != nil {
		r.OnCommit()
	}
	if err != nil {
		log.Error().Err(err).
			Int("processed", result.Processed).
			Int("planned", planned).
			Int("committed", result.Updated).
			Msg("pass aborted")
		return
	}
	log.Info().
		Int("processed", result.Processed).
		Int("updated", result.Updated).
		Msg("pass complete")
}

// applyInBatches writes items in chunks of size, in order, stopping at the first
// failed chunk. It returns how many items were committed.
func applyInBatches[T any](ctx context.Context, pass string, items []T, size int, write func(context.Context, []T) error) (int, error) {
	committed := 0
	for start, n := 0, 0; start < len(items); start, n = start+size, n+1 {
		if err := ctx.Err(); err != nil {
			return committed, &ApplyError{Pass: pass, Batch: n, Committed: committed, Err: err}
		}
		end := min(start+size, len(items))
		if err := write(ctx, items[start:end]); err != nil {
			return committed, &ApplyError{Pass: pass, Batch: n, Committed: committed, Err: err}
		}
		committed += end - start
	}
	return committed, nil
}
