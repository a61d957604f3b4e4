package crawler

import (
	"context"
	"errors"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
)

// SequentialCrawler crawls depth-first on the calling goroutine
type SequentialCrawler struct {
	source PageSource
	opts   Options
}

// NewSequential creates a SequentialCrawler that fetches pages through source
func NewSequential(source PageSource, opts Options) (*SequentialCrawler, error) {
	if source == nil {
		return nil, errors.New("crawler: nil page source")
	}
	opts = opts.withDefaults()
	opts.Parallelism = 1
	return &SequentialCrawler{source: source, opts: opts}, nil
}

// MaxParallelism is always 1
func (c *SequentialCrawler) MaxParallelism() int {
	return 1
}

// Crawl runs one crawl
func (c *SequentialCrawler) Crawl(ctx context.Context, startURLs []string) (*models.CrawlResult, error) {
	if c.opts.MaxDepth <= 0 || len(startURLs) == 0 {
		return models.EmptyResult(), nil
	}

	state := newCrawlState(ctx, c.source, c.opts)
	for _, u := range startURLs {
		c.crawl(state, u, c.opts.MaxDepth)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildResult(state, c.opts.PopularWordCount), nil
}

func (c *SequentialCrawler) crawl(state *crawlState, url string, depth int) {
	links, next := state.visit(url, depth)
	if next <= 0 {
		return
	}
	for _, link := range links {
		c.crawl(state, link, next)
	}
}
