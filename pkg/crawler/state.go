package crawler

import (
	"context"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/wordcrawl/pkg/clock"
)

// visitEntry is the visited record of one URL. depth is the most remaining
// depth any path has reached it with. links are kept once the page is
// fetched so a shorter path found later can descend again without a fetch.
type visitEntry struct {
	mu      sync.Mutex
	depth   int
	fetched bool
	links   []string
}

// visitedSet is append-only for the duration of a crawl
type visitedSet struct {
	urls  sync.Map // url -> *visitEntry
	count atomic.Int64
}

// arrive records that url was reached with depth remaining. first is true
// for exactly one caller, which must fetch the page and report it through
// fetched. A later caller bringing more depth than any before it gets the
// kept links and the depth to give them, once the page has been fetched;
// otherwise the fetching caller picks the raised depth up in fetched.
func (v *visitedSet) arrive(url string, depth int) (first bool, links []string, next int) {
	e := &visitEntry{depth: depth}
	actual, loaded := v.urls.LoadOrStore(url, e)
	if !loaded {
		v.count.Add(1)
		return true, nil, 0
	}

	e = actual.(*visitEntry)
	e.mu.Lock()
	defer e.mu.Unlock()
	if depth <= e.depth {
		return false, nil, 0
	}
	e.depth = depth
	if !e.fetched {
		return false, nil, 0
	}
	return false, e.links, depth - 1
}

// fetched stores the links of url and returns the depth to give them
func (v *visitedSet) fetched(url string, links []string) int {
	actual, ok := v.urls.Load(url)
	if !ok {
		return 0
	}
	e := actual.(*visitEntry)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fetched = true
	e.links = links
	return e.depth - 1
}

func (v *visitedSet) size() int {
	return int(v.count.Load())
}

type wordTable struct {
	mu     sync.Mutex
	counts map[string]int
}

func newWordTable() *wordTable {
	return &wordTable{counts: make(map[string]int)}
}

func (w *wordTable) merge(counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for word, n := range counts {
		w.counts[word] += n
	}
}

func (w *wordTable) snapshot() map[string]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]int, len(w.counts))
	for word, n := range w.counts {
		out[word] = n
	}
	return out
}

// crawlState is everything the tasks of one crawl share
type crawlState struct {
	ctx      context.Context
	source   PageSource
	clock    clock.Clock
	deadline time.Time
	ignored  []*regexp.Regexp
	visited  *visitedSet
	words    *wordTable
	logger   zerolog.Logger
	aborted  func() bool
}

func newCrawlState(ctx context.Context, source PageSource, opts Options) *crawlState {
	return &crawlState{
		ctx:      ctx,
		source:   source,
		clock:    opts.Clock,
		deadline: opts.Clock.Now().Add(opts.Timeout),
		ignored:  opts.IgnoredURLs,
		visited:  &visitedSet{},
		words:    newWordTable(),
		logger:   opts.Logger,
		aborted:  func() bool { return false },
	}
}

func (s *crawlState) expired() bool {
	return !s.clock.Now().Before(s.deadline)
}

func (s *crawlState) isIgnored(url string) bool {
	for _, p := range s.ignored {
		if p.MatchString(url) {
			return true
		}
	}
	return false
}

// visit does the work of one task and returns the links to descend into
// with the remaining depth to give each of them. A URL is fetched at most
// once per crawl; reaching it again with more depth only re-expands its links.
func (s *crawlState) visit(url string, depth int) (links []string, next int) {
	if depth <= 0 || s.expired() || s.ctx.Err() != nil || s.aborted() {
		return nil, 0
	}
	if s.isIgnored(url) {
		s.logger.Debug().Str("url", url).Msg("skipped ignored url")
		return nil, 0
	}

	first, links, next := s.visited.arrive(url, depth)
	if !first {
		if len(links) > 0 {
			s.logger.Debug().Str("url", url).Int("depth", depth).Msg("re-expanding with more depth")
		}
		return links, next
	}

	page, err := s.source.Fetch(s.ctx, url)
	switch {
	case err != nil:
		s.logger.Debug().Err(err).Str("url", url).Msg("fetch failed")
	case page != nil:
		s.words.merge(page.WordCounts)
		links = page.Links
		s.logger.Debug().Str("url", url).Int("depth", depth).Int("links", len(links)).Msg("crawled")
	}

	return links, s.visited.fetched(url, links)
}
