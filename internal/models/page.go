package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is what a page source returns for a single URL
type Page struct {
	URL        string         `json:"url"`
	Links      []string       `json:"links"`
	WordCounts map[string]int `json:"word_counts"`
}

// WordCount is one word with its number of occurrences
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCounts is an ordered list of word counts. It marshals to a JSON object
// whose keys keep the slice order.
type WordCounts []WordCount

// Map returns the counts as a plain map
func (wc WordCounts) Map() map[string]int {
	m := make(map[string]int, len(wc))
	for _, c := range wc {
		m[c.Word] = c.Count
	}
	return m
}

// MarshalJSON writes the counts as an object, preserving order
func (wc WordCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range wc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Word)
		if err != nil {
			return nil, fmt.Errorf("marshal word %q: %w", c.Word, err)
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", c.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back, in document order
func (wc *WordCounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("word counts: expected object, got %v", tok)
	}

	out := WordCounts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		word, ok := tok.(string)
		if !ok {
			return fmt.Errorf("word counts: unexpected key %v", tok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("word counts: count for %q: %w", word, err)
		}
		out = append(out, WordCount{Word: word, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*wc = out
	return nil
}

// CrawlResult contains the results of a crawl operation
type CrawlResult struct {
	WordCounts  WordCounts `json:"wordCounts"`
	URLsVisited int        `json:"urlsVisited"`
}

// EmptyResult is the result of a crawl that did no work
func EmptyResult() *CrawlResult {
	return &CrawlResult{WordCounts: WordCounts{}}
}
