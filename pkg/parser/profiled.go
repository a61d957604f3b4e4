package parser

import (
	"context"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
	"github.com/amosWeiskopf/wordcrawl/pkg/crawler"
	"github.com/amosWeiskopf/wordcrawl/pkg/profiler"
)

// ProfiledMethods are the PageSource methods timed by Profile
var ProfiledMethods = profiler.Profiled("Fetch")

type profiledSource struct {
	ic   *profiler.Interceptor
	next crawler.PageSource
}

// Profile wraps source so that every Fetch is timed by p
func Profile(p *profiler.Profiler, source crawler.PageSource) (crawler.PageSource, error) {
	ic, err := p.Wrap(source, ProfiledMethods)
	if err != nil {
		return nil, err
	}
	return &profiledSource{ic: ic, next: source}, nil
}

func (p *profiledSource) Fetch(ctx context.Context, url string) (*models.Page, error) {
	return profiler.Call(p.ic, "Fetch", func() (*models.Page, error) {
		return p.next.Fetch(ctx, url)
	})
}
