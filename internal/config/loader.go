package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/chesspool/schedina/internal/domain/scoring"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if SCHEDINA_CONFIG is set
//  3. env (prefix SCHEDINA_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCHEDINA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCHEDINA_THREAD_FILE, SCHEDINA_SCORING_SYSTEM, ...
	// Map env keys like SCHEDINA_SCORING_SYSTEM -> scoring_system (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCHEDINA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "schedina_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parts of the configuration that must abort the run
// when wrong. Input noise is tolerated downstream; misconfiguration is not.
func (c *Config) Validate() error {
	if c.ThreadFile == "" {
		return fmt.Errorf("%w: thread_file must not be empty", ErrInvalidConfig)
	}
	if c.TournamentFile == "" {
		return fmt.Errorf("%w: tournament_file must not be empty", ErrInvalidConfig)
	}
	if c.RankingLength <= 0 {
		return fmt.Errorf("%w: ranking_length must be positive", ErrInvalidConfig)
	}
	if _, err := scoring.TableFor(c.ScoringSystem); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
