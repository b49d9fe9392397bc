// Package extract scans whole posts for predictions and ranking guesses.
package extract

import (
	"context"
	"strings"

	"github.com/chesspool/schedina/internal/domain/lineparse"
	"github.com/chesspool/schedina/internal/domain/model"
	"github.com/chesspool/schedina/internal/domain/round"
	"github.com/chesspool/schedina/pkg/logger"
	"github.com/chesspool/schedina/pkg/metrics"
)

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithRankingLength sets how many names a final-standings guess must
// carry to be accepted.
func WithRankingLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.rankingLength = n
		}
	}
}

// WithGamesPerRound sets the expected number of games per round, used
// only for the multiple-of-games suspect heuristic. Zero disables it.
func WithGamesPerRound(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.gamesPerRound = n
		}
	}
}

// WithLogger sets a custom logger for the extractor.
func WithLogger(log logger.Logger) Option {
	return func(e *Extractor) {
		if log != nil {
			e.log = log
		}
	}
}

// Extractor walks the lines of one post, keeping a running current-round
// context, and emits the post's predictions and (when present) its
// ranking guess. Posts are independent: no state survives between calls.
type Extractor struct {
	parser        *lineparse.Parser
	rankingLength int
	gamesPerRound int
	log           logger.Logger
}

// New creates an Extractor over the given line parser.
func New(parser *lineparse.Parser, opts ...Option) *Extractor {
	e := &Extractor{
		parser:        parser,
		rankingLength: 5,
		gamesPerRound: 0,
		log:           logger.Get(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans post line by line. A round number found on any line
// becomes the round context for every later line in the same post.
// Predictions are stamped with the post author and the current round
// (zero when none has been seen). The ranking is returned only when the
// collected single-name lines count exactly matches the configured
// length; a nonzero mismatch is logged and discarded.
func (e *Extractor) Extract(ctx context.Context, post model.Post) ([]model.Prediction, *model.Ranking) {
	currentRound := 0
	var predictions []model.Prediction
	var rankingNames []string

	for _, line := range strings.Split(post.Text, "\n") {
		if r, ok := round.Detect(line); ok {
			currentRound = r
		}

		res := e.parser.Parse(line)
		switch res.Kind {
		case lineparse.Prediction:
			predictions = append(predictions, model.Prediction{
				Author:  post.Author,
				First:   res.First,
				Second:  res.Second,
				Outcome: res.Outcome,
				Round:   currentRound,
			})
			metrics.RecordPredictionExtracted()
		case lineparse.RankingEntry:
			rankingNames = append(rankingNames, res.Name)
		case lineparse.Suspect:
			metrics.RecordSuspectLine("line")
			e.log.Warn(ctx, "suspect line",
				logger.String("post", post.ID),
				logger.String("author", post.Author),
				logger.String("reason", res.Reason),
				logger.String("line", strings.TrimSpace(line)))
		case lineparse.None:
		}
	}

	var ranking *model.Ranking
	switch {
	case len(rankingNames) == e.rankingLength:
		ranking = &model.Ranking{Author: post.Author, Names: rankingNames}
		metrics.RecordRankingAccepted()
	case len(rankingNames) > 0:
		metrics.RecordRankingRejected()
		e.log.Warn(ctx, "malformed ranking discarded",
			logger.String("post", post.ID),
			logger.String("author", post.Author),
			logger.Int("got", len(rankingNames)),
			logger.Int("want", e.rankingLength))
	}

	if e.gamesPerRound > 0 && len(predictions)%e.gamesPerRound != 0 {
		metrics.RecordSuspectLine("partial_post")
		e.log.Warn(ctx, "prediction count not a multiple of games per round",
			logger.String("post", post.ID),
			logger.String("author", post.Author),
			logger.Int("predictions", len(predictions)),
			logger.Int("games_per_round", e.gamesPerRound))
	}

	if len(predictions) == 0 && ranking == nil {
		metrics.RecordSuspectLine("empty_post")
		e.log.Warn(ctx, "post yielded nothing",
			logger.String("post", post.ID),
			logger.String("author", post.Author))
	}

	metrics.RecordPostProcessed()
	return predictions, ranking
}
