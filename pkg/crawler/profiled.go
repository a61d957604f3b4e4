package crawler

import (
	"context"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
	"github.com/amosWeiskopf/wordcrawl/pkg/profiler"
)

// ProfiledMethods are the WebCrawler methods timed by Profile
var ProfiledMethods = profiler.Profiled("Crawl")

type profiledCrawler struct {
	ic   *profiler.Interceptor
	next WebCrawler
}

// Profile wraps c so that Crawl is timed by p
func Profile(p *profiler.Profiler, c WebCrawler) (WebCrawler, error) {
	ic, err := p.Wrap(c, ProfiledMethods)
	if err != nil {
		return nil, err
	}
	return &profiledCrawler{ic: ic, next: c}, nil
}

func (p *profiledCrawler) Crawl(ctx context.Context, startURLs []string) (*models.CrawlResult, error) {
	return profiler.Call(p.ic, "Crawl", func() (*models.CrawlResult, error) {
		return p.next.Crawl(ctx, startURLs)
	})
}

func (p *profiledCrawler) MaxParallelism() int {
	n, _ := profiler.Call(p.ic, "MaxParallelism", func() (int, error) {
		return p.next.MaxParallelism(), nil
	})
	return n
}
