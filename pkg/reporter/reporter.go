package reporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
)

// Supported output formats
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ErrUnsupportedFormat is returned by New for an unknown format
var ErrUnsupportedFormat = errors.New("unsupported format")

// Reporter renders crawl results in one format
type Reporter struct {
	format string
	html   *template.Template
}

// New creates a new Reporter instance
func New(format string) (*Reporter, error) {
	r := &Reporter{format: format}
	switch format {
	case FormatJSON, FormatMarkdown:
	case FormatHTML:
		t, err := template.New("report").
			Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
			Parse(htmlTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template: %w", err)
		}
		r.html = t
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return r, nil
}

// Format returns the output format name
func (r *Reporter) Format() string {
	return r.format
}

// Write renders result to w
func (r *Reporter) Write(w io.Writer, result *models.CrawlResult) error {
	if result == nil {
		result = models.EmptyResult()
	}

	var buf bytes.Buffer
	var err error
	switch r.format {
	case FormatJSON:
		err = r.generateJSON(&buf, result)
	case FormatMarkdown:
		r.generateMarkdown(&buf, result)
	case FormatHTML:
		err = r.html.Execute(&buf, result)
		if err != nil {
			err = fmt.Errorf("failed to execute template: %w", err)
		}
	}
	if err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// WriteFile appends the rendered result to the file at path, creating it if needed
func (r *Reporter) WriteFile(path string, result *models.CrawlResult) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open result file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return r.Write(f, result)
}

func (r *Reporter) generateJSON(buf *bytes.Buffer, result *models.CrawlResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	buf.Write(data)
	buf.WriteByte('\n')
	return nil
}

func (r *Reporter) generateMarkdown(buf *bytes.Buffer, result *models.CrawlResult) {
	fmt.Fprintf(buf, "# Crawl Result\n\n")
	fmt.Fprintf(buf, "**URLs visited:** %d\n\n", result.URLsVisited)

	if len(result.WordCounts) == 0 {
		fmt.Fprintf(buf, "_No words counted._\n")
		return
	}

	fmt.Fprintf(buf, "| Rank | Word | Count |\n")
	fmt.Fprintf(buf, "|------|------|-------|\n")
	for i, wc := range result.WordCounts {
		fmt.Fprintf(buf, "| %d | %s | %d |\n", i+1, escapeMarkdown(wc.Word), wc.Count)
	}
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Crawl Result</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        table { border-collapse: collapse; width: 100%; }
        th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
    </style>
</head>
<body>
    <h1>Crawl Result</h1>
    <p>URLs visited: <strong>{{.URLsVisited}}</strong></p>
    {{if .WordCounts}}
    <table>
        <tr><th>Rank</th><th>Word</th><th>Count</th></tr>
        {{range $i, $wc := .WordCounts}}
        <tr><td>{{inc $i}}</td><td>{{$wc.Word}}</td><td>{{$wc.Count}}</td></tr>
        {{end}}
    </table>
    {{else}}
    <p>No words counted.</p>
    {{end}}
</body>
</html>
`
