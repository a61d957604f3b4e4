package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
)

// ParallelCrawler crawls on a pool of workers sharing one task queue
type ParallelCrawler struct {
	source PageSource
	opts   Options
}

// NewParallel creates a ParallelCrawler that fetches pages through source
func NewParallel(source PageSource, opts Options) (*ParallelCrawler, error) {
	if source == nil {
		return nil, errors.New("crawler: nil page source")
	}
	return &ParallelCrawler{source: source, opts: opts.withDefaults()}, nil
}

// MaxParallelism returns the worker count
func (c *ParallelCrawler) MaxParallelism() int {
	return c.opts.Parallelism
}

// Crawl runs one crawl. Every call starts from an empty visited set and
// word table.
func (c *ParallelCrawler) Crawl(ctx context.Context, startURLs []string) (*models.CrawlResult, error) {
	if c.opts.MaxDepth <= 0 || len(startURLs) == 0 {
		return models.EmptyResult(), nil
	}

	state := newCrawlState(ctx, c.source, c.opts)
	pool := newWorkPool(c.opts.Parallelism)
	state.aborted = pool.failed

	c.opts.Logger.Info().
		Int("start_pages", len(startURLs)).
		Int("max_depth", c.opts.MaxDepth).
		Dur("timeout", c.opts.Timeout).
		Int("parallelism", c.opts.Parallelism).
		Msg("crawl started")

	var roots sync.WaitGroup
	for _, u := range startURLs {
		roots.Add(1)
		t := newCrawlTask(u, c.opts.MaxDepth, state, pool, nil)
		t.onDone = roots.Done
		pool.submit(t.run)
	}
	roots.Wait()

	if err := pool.close(); err != nil {
		return nil, fmt.Errorf("crawl aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := buildResult(state, c.opts.PopularWordCount)
	c.opts.Logger.Info().
		Int("urls_visited", result.URLsVisited).
		Int("words", len(result.WordCounts)).
		Msg("crawl finished")
	return result, nil
}

// Implementation names accepted by New
const (
	ImplParallel   = "parallel"
	ImplSequential = "sequential"
)

// New returns the crawler named by impl. An empty impl selects the parallel
// crawler.
func New(impl string, source PageSource, opts Options) (WebCrawler, error) {
	switch impl {
	case "", ImplParallel:
		c, err := NewParallel(source, opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ImplSequential:
		c, err := NewSequential(source, opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("crawler: unknown implementation %q", impl)
	}
}
