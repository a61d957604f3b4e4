package crawler

import (
	"sort"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
)

// SortWordCounts orders counts by count, then by word length, both
// descending, then alphabetically. limit > 0 keeps only the first limit words.
func SortWordCounts(counts map[string]int, limit int) models.WordCounts {
	sorted := make(models.WordCounts, 0, len(counts))
	for word, n := range counts {
		sorted = append(sorted, models.WordCount{Word: word, Count: n})
	}

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if len(a.Word) != len(b.Word) {
			return len(a.Word) > len(b.Word)
		}
		return a.Word < b.Word
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func buildResult(state *crawlState, limit int) *models.CrawlResult {
	return &models.CrawlResult{
		WordCounts:  SortWordCounts(state.words.snapshot(), limit),
		URLsVisited: state.visited.size(),
	}
}
