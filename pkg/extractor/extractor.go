package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/amosWeiskopf/wordcrawl/pkg/utils"
)

// skippedElements never contribute visible text
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
}

// Extractor handles content extraction from HTML
type Extractor struct {
	mainContentOnly bool
}

// New creates a new Extractor instance. With mainContentOnly set, page text
// comes from trafilatura's main-content extraction, falling back to all
// visible text when it finds nothing.
func New(mainContentOnly bool) *Extractor {
	return &Extractor{mainContentOnly: mainContentOnly}
}

// Document is the parsed form of one HTML page
type Document struct {
	Text  string
	Links []string
}

// Extract parses body, which was served from baseURL
func (e *Extractor) Extract(body []byte, baseURL string) (*Document, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var text string
	if e.mainContentOnly {
		text = e.ExtractText(body)
	}
	if text == "" {
		text = VisibleText(doc)
	}

	return &Document{
		Text:  text,
		Links: ExtractLinks(doc, baseURL),
	}, nil
}

// ExtractText extracts the main content with trafilatura. It returns "" when
// trafilatura fails or finds no content.
func (e *Extractor) ExtractText(body []byte) string {
	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{})
	if err != nil || result == nil {
		return ""
	}
	return utils.CleanText(result.ContentText)
}

// VisibleText concatenates every text node outside script-like elements
func VisibleText(doc *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return utils.CleanText(b.String())
}

// ExtractLinks returns the absolute, fragment-free targets of every <a href>
// in document order, without duplicates. Links that are not web pages are
// dropped.
func ExtractLinks(doc *html.Node, baseURL string) []string {
	var links []string
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" || strings.TrimSpace(attr.Val) == "" {
					continue
				}
				link := utils.NormalizeURL(utils.ResolveURL(baseURL, strings.TrimSpace(attr.Val)))
				if utils.IsWebpageURL(link) && !seen[link] {
					seen[link] = true
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}
