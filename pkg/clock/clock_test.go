package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFake(start)

	assert.Equal(t, start, f.Now())

	f.Advance(1500 * time.Millisecond)
	assert.Equal(t, start.Add(1500*time.Millisecond), f.Now())

	later := start.Add(time.Hour)
	f.Set(later)
	assert.Equal(t, later, f.Now())
}

func TestReal(t *testing.T) {
	before := time.Now()
	now := Real().Now()
	assert.False(t, now.Before(before))
}
