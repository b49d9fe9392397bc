// Package config defines run configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"

	"github.com/chesspool/schedina/internal/domain/model"
)

// CorrectionPost is a manually authored post injected into the pipeline
// as if scraped, used to fix up posts the parser cannot read.
type CorrectionPost struct {
	Author string `koanf:"author"`
	Text   string `koanf:"text"`
}

// Config contains run configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ThreadFile is the saved forum-thread HTML file.
	ThreadFile string `koanf:"thread_file"`

	// TournamentFile is the official results text blob.
	TournamentFile string `koanf:"tournament_file"`

	// ScoringSystem names the point preset: classic, flat, steep.
	ScoringSystem string `koanf:"scoring_system"`

	// GamesPerRound is the expected games per round; 0 derives half the
	// participant count.
	GamesPerRound int `koanf:"games_per_round"`

	// RankingLength is how many names a standings guess must carry.
	RankingLength int `koanf:"ranking_length"`

	// PerfectBonus is added when an author scores on every game of a round.
	PerfectBonus int `koanf:"perfect_bonus"`

	// Ranking-guess point values.
	RankingFirstCorrect int `koanf:"ranking_first_correct"`
	RankingOtherCorrect int `koanf:"ranking_other_correct"`
	RankingMisplaced    int `koanf:"ranking_misplaced"`

	// DefaultDrawPrediction scores silent rounds of returning authors as
	// all-draw forecasts.
	DefaultDrawPrediction bool `koanf:"default_draw_prediction"`

	// StrictWordBounds toggles word-boundary participant matching.
	StrictWordBounds bool `koanf:"strict_word_bounds"`

	// MaxExtraWords bounds non-name words on an accepted ranking line.
	MaxExtraWords int `koanf:"max_extra_words"`

	// ExtractWorkers bounds the parallel post-extraction fan-out.
	ExtractWorkers int `koanf:"extract_workers"`

	// Participants are the tournament identities to recognize.
	Participants []model.Participant `koanf:"participants"`

	// AuthorAliases remaps team names to canonical authors.
	AuthorAliases map[string]string `koanf:"author_aliases"`

	// BlacklistedAuthors are dropped before extraction.
	BlacklistedAuthors []string `koanf:"blacklisted_authors"`

	// Corrections are injected after the scraped posts.
	Corrections []CorrectionPost `koanf:"corrections"`

	// OfficialRanking maps each final position to its acceptable names.
	OfficialRanking [][]string `koanf:"official_ranking"`
}

// New creates a Config using defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use and
// is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:            "info",
		ThreadFile:          "thread.html",
		TournamentFile:      "tournament.txt",
		ScoringSystem:       "classic",
		GamesPerRound:       0,
		RankingLength:       5,
		PerfectBonus:        1,
		RankingFirstCorrect: 3,
		RankingOtherCorrect: 2,
		RankingMisplaced:    1,
		StrictWordBounds:    true,
		MaxExtraWords:       2,
		ExtractWorkers:      4,
		AuthorAliases:       map[string]string{},
	}
	return c
}

// EffectiveGamesPerRound returns the configured games per round, or half
// the participant count when unset.
func (c *Config) EffectiveGamesPerRound() int {
	if c.GamesPerRound > 0 {
		return c.GamesPerRound
	}
	return len(c.Participants) / 2
}

// CanonicalAuthor resolves team-name aliases to the scored author.
func (c *Config) CanonicalAuthor(author string) string {
	if canonical, ok := c.AuthorAliases[author]; ok {
		return canonical
	}
	return author
}

// Blacklisted reports whether posts by author are excluded from the run.
func (c *Config) Blacklisted(author string) bool {
	for _, a := range c.BlacklistedAuthors {
		if a == author {
			return true
		}
	}
	return false
}
