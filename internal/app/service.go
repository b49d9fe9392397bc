// Package app wires the pipeline stages together and runs them over a
// loaded corpus: extraction, reconciliation, scoring, leaderboards.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/chesspool/schedina/internal/config"
	"github.com/chesspool/schedina/internal/domain/extract"
	"github.com/chesspool/schedina/internal/domain/lineparse"
	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/internal/domain/participant"
	"github.com/chesspool/schedina/internal/domain/reconcile"
	"github.com/chesspool/schedina/internal/domain/scoring"
	"github.com/chesspool/schedina/pkg/logger"
	"github.com/chesspool/schedina/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithWorkerCount overrides the extraction fan-out width.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workers = count
		}
	}
}

// Service runs the prediction pipeline.
type Service struct {
	cfg        *config.Config
	extractor  *extract.Extractor
	reconciler *reconcile.Reconciler
	engine     *scoring.Engine
	workers    int
	log        logger.Logger
}

// Result carries everything the output layer needs.
type Result struct {
	RoundEntries []model.RoundEntry
	Totals       []model.TotalEntry
	Predictions  []model.Prediction // scored, after repair and dedupe, for audit
	Rankings     []model.Ranking
}

// New builds a Service from configuration. An unknown scoring system is a
// fatal configuration error.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	table, err := scoring.TableFor(cfg.ScoringSystem)
	if err != nil {
		return nil, fmt.Errorf("configure scoring: %w", err)
	}

	s := &Service{
		cfg:     cfg,
		workers: cfg.ExtractWorkers,
		log:     logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}

	matcher := participant.NewMatcher(cfg.Participants,
		participant.WithWordBoundaries(cfg.StrictWordBounds))
	parser := lineparse.NewParser(matcher,
		lineparse.WithMaxExtraWords(cfg.MaxExtraWords))
	s.extractor = extract.New(parser,
		extract.WithRankingLength(cfg.RankingLength),
		extract.WithGamesPerRound(cfg.EffectiveGamesPerRound()),
		extract.WithLogger(s.log))
	s.reconciler = reconcile.New(reconcile.WithLogger(s.log))
	s.engine = scoring.NewEngine(
		scoring.WithTable(table),
		scoring.WithPerfectBonus(cfg.PerfectBonus),
		scoring.WithRankingPoints(scoring.RankingPoints{
			FirstCorrect: cfg.RankingFirstCorrect,
			OtherCorrect: cfg.RankingOtherCorrect,
			Misplaced:    cfg.RankingMisplaced,
		}),
		scoring.WithDefaultDraw(cfg.DefaultDrawPrediction),
		scoring.WithLogger(s.log))

	metrics.UpdateParticipantCount(len(cfg.Participants))
	return s, nil
}

type postResult struct {
	predictions []model.Prediction
	ranking     *model.Ranking
}

// Run executes the whole pipeline. Posts are extracted in parallel with
// a bounded fan-out; results are recombined in input order so later
// stages see a deterministic sequence. Reconciliation and scoring run
// after the join, as they need the complete prediction set.
func (s *Service) Run(ctx context.Context, tournament model.Post, posts []model.Post) (*Result, error) {
	official, _ := s.extractor.Extract(ctx, tournament)
	if len(official) == 0 {
		return nil, fmt.Errorf("tournament feed yielded no official results")
	}

	results := make([]postResult, len(posts))
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i, post := range posts {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p model.Post) {
			defer wg.Done()
			defer func() { <-sem }()
			preds, ranking := s.extractor.Extract(ctx, p)
			results[i] = postResult{predictions: preds, ranking: ranking}
		}(i, post)
	}
	wg.Wait()

	predictions := append([]model.Prediction(nil), official...)
	var rankings []model.Ranking
	for _, res := range results {
		predictions = append(predictions, res.predictions...)
		if res.ranking != nil {
			rankings = append(rankings, *res.ranking)
		}
	}

	repaired := s.reconciler.RepairRounds(ctx, predictions)
	deduped := s.reconciler.Deduplicate(ctx, repaired)
	scored := s.engine.ScorePredictions(ctx, deduped)

	entries := s.engine.RoundEntries(ctx, scored)
	rankingScores := s.engine.RankingScores(ctx, rankings, model.OfficialRanking(s.cfg.OfficialRanking))
	totals := s.engine.GrandTotal(ctx, entries, rankingScores)

	s.log.Info(ctx, "pipeline complete",
		logger.Int("posts", len(posts)),
		logger.Int("predictions", len(scored)),
		logger.Int("rankings", len(rankings)),
		logger.Int("round_entries", len(entries)))

	return &Result{
		RoundEntries: entries,
		Totals:       totals,
		Predictions:  scored,
		Rankings:     rankings,
	}, nil
}
