package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chesspool/schedina/internal/adapters/feed"
	"github.com/chesspool/schedina/internal/adapters/report"
	"github.com/chesspool/schedina/internal/app"
	"github.com/chesspool/schedina/internal/config"
	"github.com/chesspool/schedina/pkg/logger"
	"github.com/chesspool/schedina/pkg/metrics"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loader := feed.New(
		feed.WithAliases(cfg.AuthorAliases),
		feed.WithBlacklist(cfg.Blacklisted),
		feed.WithLogger(log))

	tournament, err := loader.Tournament(ctx, cfg.TournamentFile)
	if err != nil {
		log.Fatal(ctx, "failed to load tournament feed", logger.Error(err))
	}

	posts, err := loader.LoadThread(ctx, cfg.ThreadFile)
	if err != nil {
		log.Fatal(ctx, "failed to load thread", logger.Error(err))
	}

	// Manual corrections ride after the thread so later-wins dedupe lets
	// them override scraped posts.
	corrections := make([]feed.Correction, 0, len(cfg.Corrections))
	for _, c := range cfg.Corrections {
		corrections = append(corrections, feed.Correction{Author: c.Author, Text: c.Text})
	}
	posts = append(posts, loader.Corrections(ctx, corrections)...)

	svc, err := app.New(cfg)
	if err != nil {
		log.Fatal(ctx, "failed to configure pipeline", logger.Error(err))
	}

	result, err := svc.Run(ctx, tournament, posts)
	if err != nil {
		log.Fatal(ctx, "pipeline failed", logger.Error(err))
	}

	renderer := report.New(os.Stdout)
	if err := renderer.RoundTables(result.RoundEntries); err != nil {
		log.Fatal(ctx, "failed to render round tables", logger.Error(err))
	}
	if err := renderer.GrandTotals(result.Totals); err != nil {
		log.Fatal(ctx, "failed to render totals", logger.Error(err))
	}

	if lines, err := metrics.Summary(); err == nil {
		log.Info(ctx, "run metrics", logger.String("summary", strings.Join(lines, " ")))
	}
}
