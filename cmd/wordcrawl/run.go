package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/amosWeiskopf/wordcrawl/internal/config"
	"github.com/amosWeiskopf/wordcrawl/internal/logging"
	"github.com/amosWeiskopf/wordcrawl/pkg/clock"
	"github.com/amosWeiskopf/wordcrawl/pkg/crawler"
	"github.com/amosWeiskopf/wordcrawl/pkg/parser"
	"github.com/amosWeiskopf/wordcrawl/pkg/profiler"
	"github.com/amosWeiskopf/wordcrawl/pkg/reporter"
)

// run loads the configuration at configPath, crawls, then writes the result
// and the profile. Outputs without a configured path go to stdout.
func run(ctx context.Context, configPath string, verbose bool, stdout io.Writer) (err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = zerolog.LevelDebugValue
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, logCloser.Close())
	}()

	rep, err := reporter.New(cfg.ResultFormat)
	if err != nil {
		return err
	}

	// Compiled already by Validate, so these cannot fail here.
	ignoredURLs, _ := cfg.IgnoredURLPatterns()
	ignoredWords, _ := cfg.IgnoredWordPatterns()

	prof := profiler.New(clock.Real())

	source, err := parser.Profile(prof, parser.New(parser.Options{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           cfg.ParserTimeout(),
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		RespectRobotsTxt:  cfg.Fetch.RespectRobotsTxt,
		MainContentOnly:   cfg.Fetch.MainContentOnly,
		MaxBodySize:       cfg.Fetch.MaxBodyBytes,
		IgnoredWords:      ignoredWords,
		Logger:            logger,
	}))
	if err != nil {
		return err
	}

	c, err := crawler.New(cfg.ImplementationOverride, source, crawler.Options{
		MaxDepth:         cfg.MaxDepth,
		Timeout:          cfg.Timeout(),
		PopularWordCount: cfg.PopularWordCount,
		Parallelism:      cfg.Parallelism,
		IgnoredURLs:      ignoredURLs,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}
	c, err = crawler.Profile(prof, c)
	if err != nil {
		return err
	}

	result, err := c.Crawl(ctx, cfg.StartPages)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	logger.Info().
		Int("urlsVisited", result.URLsVisited).
		Int("words", len(result.WordCounts)).
		Int("parallelism", c.MaxParallelism()).
		Msg("crawl complete")

	if cfg.ResultPath != "" {
		if err := rep.WriteFile(cfg.ResultPath, result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		logger.Info().Str("path", cfg.ResultPath).Str("format", rep.Format()).Msg("result saved")
	} else if err := rep.Write(stdout, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if cfg.ProfileOutputPath != "" {
		if err := prof.WriteDataToFile(cfg.ProfileOutputPath); err != nil {
			return fmt.Errorf("failed to write profile: %w", err)
		}
		logger.Info().Str("path", cfg.ProfileOutputPath).Msg("profile saved")
	} else if err := prof.WriteData(stdout); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}
