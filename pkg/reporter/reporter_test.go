package reporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
)

func sampleResult() *models.CrawlResult {
	return &models.CrawlResult{
		WordCounts: models.WordCounts{
			{Word: "crawler", Count: 5},
			{Word: "go", Count: 5},
			{Word: "web", Count: 1},
		},
		URLsVisited: 3,
	}
}

func TestNewUnsupported(t *testing.T) {
	r, err := New("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Nil(t, r)
}

func TestNewFormats(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatMarkdown, FormatHTML} {
		r, err := New(format)
		require.NoError(t, err, format)
		assert.Equal(t, format, r.Format())
	}
}

func TestWriteJSON(t *testing.T) {
	r, err := New(FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, sampleResult()))

	want := `{
  "wordCounts": {
    "crawler": 5,
    "go": 5,
    "web": 1
  },
  "urlsVisited": 3
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONNilResult(t *testing.T) {
	r, err := New(FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, nil))
	assert.JSONEq(t, `{"wordCounts": {}, "urlsVisited": 0}`, buf.String())
}

func TestWriteMarkdown(t *testing.T) {
	r, err := New(FormatMarkdown)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "**URLs visited:** 3")
	assert.Contains(t, out, "| 1 | crawler | 5 |")
	assert.Contains(t, out, "| 2 | go | 5 |")
	assert.Less(t, strings.Index(out, "crawler"), strings.Index(out, "| go |"))

	buf.Reset()
	require.NoError(t, r.Write(&buf, models.EmptyResult()))
	assert.Contains(t, buf.String(), "_No words counted._")
}

func TestWriteHTML(t *testing.T) {
	r, err := New(FormatHTML)
	require.NoError(t, err)

	result := sampleResult()
	result.WordCounts = append(result.WordCounts, models.WordCount{Word: "<b>", Count: 1})

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "<strong>3</strong>")
	assert.Contains(t, out, "<td>1</td><td>crawler</td><td>5</td>")
	assert.Contains(t, out, "&lt;b&gt;")
	assert.NotContains(t, out, "<td><b></td>")
}

func TestWriteFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	r, err := New(FormatJSON)
	require.NoError(t, err)

	require.NoError(t, r.WriteFile(path, sampleResult()))
	require.NoError(t, r.WriteFile(path, models.EmptyResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), `"urlsVisited"`))
}

func TestWriteFileMissingDir(t *testing.T) {
	r, err := New(FormatJSON)
	require.NoError(t, err)

	err = r.WriteFile(filepath.Join(t.TempDir(), "missing", "result.json"), sampleResult())
	assert.Error(t, err)
}
