package crawler

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
	"github.com/amosWeiskopf/wordcrawl/pkg/clock"
)

// WebCrawler defines the interface for web crawling operations
type WebCrawler interface {
	// Crawl visits startURLs and everything reachable from them within the
	// configured depth and time budget
	Crawl(ctx context.Context, startURLs []string) (*models.CrawlResult, error)

	// MaxParallelism is the number of pages that may be fetched at once
	MaxParallelism() int
}

// PageSource fetches and parses a single page
type PageSource interface {
	Fetch(ctx context.Context, url string) (*models.Page, error)
}

// Options contains configuration for the crawler
type Options struct {
	MaxDepth         int              // Remaining depth given to each start page
	Timeout          time.Duration    // Wall-clock budget for the whole crawl
	PopularWordCount int              // Keep only this many words; 0 keeps all
	Parallelism      int              // Worker count, ParallelCrawler only
	IgnoredURLs      []*regexp.Regexp // URLs fully matching any pattern are skipped
	Clock            clock.Clock      // Defaults to the wall clock
	Logger           zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.Real()
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return o
}
