package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "punctuation", text: "Hello, World! Hello...", want: []string{"hello", "world", "hello"}},
		{name: "digits", text: "route 66 rocks", want: []string{"route", "66", "rocks"}},
		{name: "unicode", text: "Crème brûlée", want: []string{"crème", "brûlée"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.text)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountWords(t *testing.T) {
	ignored, err := CompileFullMatch([]string{"^.{1,2}$", "the"})
	require.NoError(t, err)

	got := CountWords("The cat and the other cat sat on a mat", ignored)
	assert.Equal(t, map[string]int{"cat": 2, "and": 1, "other": 1, "sat": 1, "mat": 1}, got)
}

func TestCompileFullMatch(t *testing.T) {
	res, err := CompileFullMatch([]string{"http://example\\.com/.*"})
	require.NoError(t, err)
	require.Len(t, res, 1)

	assert.True(t, res[0].MatchString("http://example.com/a"))
	assert.False(t, res[0].MatchString("see http://example.com/a"))

	_, err = CompileFullMatch([]string{"("})
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a \n\t b   c "))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "http://example.com/Path?q=1", NormalizeURL("HTTP://Example.COM/Path?q=1#section"))
	assert.Equal(t, "::bad", NormalizeURL("::bad"))
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "http://example.com/b/c", ResolveURL("http://example.com/b/a", "c"))
	assert.Equal(t, "http://other.org/", ResolveURL("http://example.com/", "http://other.org/"))
}

func TestIsWebpageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"http://example.com/page", true},
		{"https://example.com/", true},
		{"file:///tmp/page.html", true},
		{"mailto:someone@example.com", false},
		{"javascript:void(0)", false},
		{"http://example.com/logo.PNG", false},
		{"http://example.com/app.js", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWebpageURL(tt.url), tt.url)
	}
}
