package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amosWeiskopf/wordcrawl/internal/models"
)

func TestSortWordCounts(t *testing.T) {
	counts := map[string]int{
		"go":      3,
		"crawler": 3,
		"web":     1,
		"fork":    5,
		"join":    3,
		"abc":     1,
	}

	tests := []struct {
		name  string
		limit int
		want  models.WordCounts
	}{
		{
			name:  "all words",
			limit: 0,
			want: models.WordCounts{
				{Word: "fork", Count: 5},
				{Word: "crawler", Count: 3},
				{Word: "join", Count: 3},
				{Word: "go", Count: 3},
				{Word: "abc", Count: 1},
				{Word: "web", Count: 1},
			},
		},
		{
			name:  "truncated",
			limit: 2,
			want: models.WordCounts{
				{Word: "fork", Count: 5},
				{Word: "crawler", Count: 3},
			},
		},
		{
			name:  "limit above size",
			limit: 100,
			want: models.WordCounts{
				{Word: "fork", Count: 5},
				{Word: "crawler", Count: 3},
				{Word: "join", Count: 3},
				{Word: "go", Count: 3},
				{Word: "abc", Count: 1},
				{Word: "web", Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortWordCounts(counts, tt.limit))
		})
	}
}

func TestSortWordCountsEmpty(t *testing.T) {
	got := SortWordCounts(nil, 3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
