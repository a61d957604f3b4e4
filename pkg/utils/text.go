package utils

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// CleanText removes extra whitespace and normalizes text
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Words splits text into lower-cased words. Anything that is not a letter or
// a digit separates words.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// CountWords counts the words of text, dropping any word that fully matches
// one of ignored
func CountWords(text string, ignored []*regexp.Regexp) map[string]int {
	counts := make(map[string]int)
	for _, word := range Words(text) {
		if matchesAny(word, ignored) {
			continue
		}
		counts[word]++
	}
	return counts
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// CompileFullMatch compiles patterns so that each must match a whole string
func CompileFullMatch(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// NormalizeURL lower-cases the scheme and host and drops the fragment
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// ResolveURL resolves ref against base
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsWebpageURL reports whether a link is worth following
func IsWebpageURL(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "file://") {
		return false
	}
	nonWebExts := []string{".jpg", ".jpeg", ".png", ".gif", ".pdf", ".zip", ".mp4", ".mp3", ".css", ".js"}
	for _, ext := range nonWebExts {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}
