package parser

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

const robotsTimeout = 10 * time.Second

// robotsCache fetches robots.txt once per scheme and host
type robotsCache struct {
	client    *http.Client
	userAgent string

	mu      sync.Mutex
	entries map[string]*robotsEntry
}

type robotsEntry struct {
	once sync.Once
	data *robotstxt.RobotsData
}

func newRobotsCache(client *http.Client, userAgent string) *robotsCache {
	return &robotsCache{
		client:    client,
		userAgent: userAgent,
		entries:   make(map[string]*robotsEntry),
	}
}

// allowed reports whether u may be fetched. A robots.txt that cannot be
// retrieved or parsed allows everything.
func (r *robotsCache) allowed(ctx context.Context, u *url.URL) bool {
	origin := u.Scheme + "://" + u.Host

	r.mu.Lock()
	entry, ok := r.entries[origin]
	if !ok {
		entry = &robotsEntry{}
		r.entries[origin] = entry
	}
	r.mu.Unlock()

	// Shared by every page on the origin; detached from the asking page's deadline.
	entry.once.Do(func() {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), robotsTimeout)
		defer cancel()
		entry.data = r.fetch(fetchCtx, origin)
	})
	if entry.data == nil {
		return true
	}
	return entry.data.TestAgent(u.RequestURI(), r.userAgent)
}

func (r *robotsCache) fetch(ctx context.Context, origin string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}
