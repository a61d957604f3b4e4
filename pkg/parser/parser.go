// Package parser implements crawler.PageSource over HTTP(S) and local files.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
	"github.com/amosWeiskopf/wordcrawl/pkg/extractor"
	"github.com/amosWeiskopf/wordcrawl/pkg/utils"
)

const (
	defaultUserAgent   = "wordcrawl/1.0"
	defaultMaxBodySize = 10 * 1024 * 1024
)

var (
	// ErrUnsupportedScheme is returned for URLs that are neither http(s) nor file
	ErrUnsupportedScheme = errors.New("unsupported url scheme")

	// ErrDisallowed is returned when robots.txt forbids the URL
	ErrDisallowed = errors.New("disallowed by robots.txt")

	// ErrNotHTML is returned when the response is not a web page
	ErrNotHTML = errors.New("not an html page")
)

// Options configures an HTTPSource
type Options struct {
	UserAgent         string
	Timeout           time.Duration    // Per page fetch and parse; 0 means no limit
	RequestsPerSecond float64          // 0 means unlimited
	RespectRobotsTxt  bool
	MainContentOnly   bool
	MaxBodySize       int64
	IgnoredWords      []*regexp.Regexp // Words fully matching any pattern are not counted
	Client            *http.Client
	Logger            zerolog.Logger
}

// HTTPSource fetches pages over HTTP(S) or from file:// URLs and counts
// their words
type HTTPSource struct {
	opts      Options
	client    *http.Client
	limiter   *rate.Limiter
	robots    *robotsCache
	extractor *extractor.Extractor
}

// New creates an HTTPSource
func New(opts Options) *HTTPSource {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 50,
				IdleConnTimeout:     30 * time.Second,
			},
			Timeout: 30 * time.Second,
		}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &HTTPSource{
		opts:      opts,
		client:    client,
		limiter:   rate.NewLimiter(limit, 1),
		robots:    newRobotsCache(client, opts.UserAgent),
		extractor: extractor.New(opts.MainContentOnly),
	}
}

// Fetch downloads rawURL and returns its links and word counts
func (s *HTTPSource) Fetch(ctx context.Context, rawURL string) (*models.Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	var body []byte
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		body, err = s.fetchHTTP(ctx, u)
	case "file":
		body, err = s.readFile(u)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	doc, err := s.extractor.Extract(body, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}

	return &models.Page{
		URL:        rawURL,
		Links:      doc.Links,
		WordCounts: utils.CountWords(doc.Text, s.opts.IgnoredWords),
	}, nil
}

func (s *HTTPSource) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	if s.opts.RespectRobotsTxt && !s.robots.allowed(ctx, u) {
		return nil, fmt.Errorf("%s: %w", u, ErrDisallowed)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isWebpageMIME(ct) {
		return nil, fmt.Errorf("%s (%s): %w", u, ct, ErrNotHTML)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.opts.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}

	s.opts.Logger.Debug().Str("url", u.String()).Int("bytes", len(body)).Msg("fetched page")
	return body, nil
}

func (s *HTTPSource) readFile(u *url.URL) ([]byte, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", u, err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, s.opts.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	return body, nil
}

func isWebpageMIME(contentType string) bool {
	mimeType := strings.TrimSpace(strings.Split(strings.ToLower(contentType), ";")[0])
	webpageMIMEs := []string{"text/html", "application/xhtml+xml", "application/xhtml", "text/xml", "application/xml"}
	for _, mime := range webpageMIMEs {
		if mime == mimeType {
			return true
		}
	}
	return false
}
