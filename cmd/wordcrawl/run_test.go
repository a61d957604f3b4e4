package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosWeiskopf/wordcrawl/internal/config"
	"github.com/amosWeiskopf/wordcrawl/internal/models"
)

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/":      `<html><body><p>gopher gopher crawl</p><a href="/one">one</a></body></html>`,
		"/one":   `<html><body><p>gopher crawl</p><a href="/two">two</a></body></html>`,
		"/two":   `<html><body><p>gopher</p></body></html>`,
		"/skip/": `<html><body><p>hidden</p></body></html>`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, dir string, cfg map[string]any) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunWritesFiles(t *testing.T) {
	server := newSite(t)
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "result.json")
	profilePath := filepath.Join(dir, "profile.txt")

	path := writeConfig(t, dir, map[string]any{
		"startPages":        []string{server.URL + "/"},
		"ignoredUrls":       []string{".*/skip/.*"},
		"parallelism":       2,
		"maxDepth":          10,
		"timeoutSeconds":    30,
		"popularWordCount":  2,
		"resultPath":        resultPath,
		"profileOutputPath": profilePath,
		"logging":           map[string]any{"outputPath": filepath.Join(dir, "wordcrawl.log")},
	})

	out, err := execute(t, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(resultPath)
	require.NoError(t, err)
	var result models.CrawlResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 3, result.URLsVisited)
	assert.Equal(t, models.WordCounts{
		{Word: "gopher", Count: 4},
		{Word: "crawl", Count: 2},
	}, result.WordCounts)

	profile, err := os.ReadFile(profilePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(profile), "Run at "))
	assert.Contains(t, string(profile), "crawler.ParallelCrawler#Crawl took ")
	assert.Contains(t, string(profile), "parser.HTTPSource#Fetch took ")

	logData, err := os.ReadFile(filepath.Join(dir, "wordcrawl.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "crawl complete")
	assert.Contains(t, string(logData), "format=json")
}

func TestRunWritesStdout(t *testing.T) {
	server := newSite(t)
	dir := t.TempDir()

	path := writeConfig(t, dir, map[string]any{
		"startPages":             []string{server.URL + "/"},
		"implementationOverride": "sequential",
		"maxDepth":               1,
		"timeoutSeconds":         30,
		"resultFormat":           "markdown",
		"logging":                map[string]any{"level": "error"},
	})

	out, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "**URLs visited:** 1")
	assert.Contains(t, out, "| 1 | gopher | 2 |")
	assert.Contains(t, out, "Run at ")
	assert.Contains(t, out, "crawler.SequentialCrawler#Crawl took ")
}

func TestRunUsage(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "Usage: wordcrawl [config-path]\n", out)
}

func TestRunWithoutStartPages(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"startPages": []string{},
		"maxDepth":   3,
		"logging":    map[string]any{"level": "error"},
	})

	out, err := execute(t, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"wordCounts\": {},\n  \"urlsVisited\": 0\n}\n"), out)
	assert.Contains(t, out, "Run at ")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, config.ErrConfigNotFound)

	_, err = execute(t, "a.json", "b.json")
	assert.Error(t, err)
}
