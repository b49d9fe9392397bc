// Package reconcile repairs extracted predictions against the
// authoritative results feed and drops superseded duplicates.
package reconcile

import (
	"context"

	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/pkg/logger"
	"github.com/chesspool/schedina/pkg/metrics"
)

// Option applies a configuration option to the Reconciler.
type Option func(*Reconciler)

// WithLogger sets a custom logger for the reconciler.
func WithLogger(log logger.Logger) Option {
	return func(r *Reconciler) {
		if log != nil {
			r.log = log
		}
	}
}

// Reconciler cross-references predictions with the official feed. Both
// operations are pure: input slices are never mutated.
type Reconciler struct {
	log logger.Logger
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{log: logger.Get()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RepairRounds rewrites the round of every non-official prediction whose
// pairing has an official counterpart with a different round. Forum
// authors routinely omit or misnumber rounds; the tournament feed is the
// source of truth. A warning is emitted only when an explicit wrong round
// was overwritten, not when a missing one was filled in. Predictions
// about pairings absent from the feed are kept unchanged with a warning.
func (r *Reconciler) RepairRounds(ctx context.Context, predictions []model.Prediction) []model.Prediction {
	official := make(map[model.Pairing]model.Prediction)
	for _, p := range predictions {
		if p.Official() {
			official[p.Pairing()] = p
		}
	}

	out := make([]model.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if p.Official() {
			out = append(out, p)
			continue
		}

		auth, ok := official[p.Pairing()]
		if !ok {
			r.log.Warn(ctx, "no official result for pairing; kept as-is",
				logger.String("author", p.Author),
				logger.String("first", p.First),
				logger.String("second", p.Second))
			out = append(out, p)
			continue
		}

		if p.Round == auth.Round {
			out = append(out, p)
			continue
		}

		if p.Round != 0 {
			r.log.Warn(ctx, "wrong round corrected from official feed",
				logger.String("author", p.Author),
				logger.String("first", p.First),
				logger.String("second", p.Second),
				logger.Int("got", p.Round),
				logger.Int("want", auth.Round))
		}
		metrics.RecordRoundRepaired()
		out = append(out, p.WithRound(auth.Round))
	}
	return out
}

// dedupeKey identifies one author's forecast for one game.
type dedupeKey struct {
	author string
	first  string
	second string
	round  int
}

// Deduplicate keeps, for every (author, first, second, round) key, only
// the prediction appearing last in the input sequence: later posts are
// corrected forecasts and must win. Relative order of survivors is
// preserved.
func (r *Reconciler) Deduplicate(ctx context.Context, predictions []model.Prediction) []model.Prediction {
	seen := make(map[dedupeKey]bool, len(predictions))
	survivors := make([]model.Prediction, 0, len(predictions))

	for i := len(predictions) - 1; i >= 0; i-- {
		p := predictions[i]
		key := dedupeKey{author: p.Author, first: p.First, second: p.Second, round: p.Round}
		if seen[key] {
			metrics.RecordDuplicateDropped()
			r.log.Debug(ctx, "superseded duplicate dropped",
				logger.String("author", p.Author),
				logger.String("first", p.First),
				logger.String("second", p.Second),
				logger.Int("round", p.Round))
			continue
		}
		seen[key] = true
		survivors = append(survivors, p)
	}

	// Walked backward; restore input order.
	for i, j := 0, len(survivors)-1; i < j; i, j = i+1, j-1 {
		survivors[i], survivors[j] = survivors[j], survivors[i]
	}
	return survivors
}
