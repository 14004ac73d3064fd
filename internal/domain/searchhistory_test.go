package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushSearchQuery(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		history  []string
		query    string
		expected []string
	}{
		{
			name:     "first query starts the history",
			history:  nil,
			query:    "photosynthesis",
			expected: []string{"photosynthesis"},
		},
		{
			name:     "new query goes to the front",
			history:  []string{"mitosis", "osmosis"},
			query:    "photosynthesis",
			expected: []string{"photosynthesis", "mitosis", "osmosis"},
		},
		{
			name:     "repeated query moves to front instead of duplicating",
			history:  []string{"mitosis", "photosynthesis", "osmosis"},
			query:    "photosynthesis",
			expected: []string{"photosynthesis", "mitosis", "osmosis"},
		},
		{
			name:     "dedupe is case-insensitive",
			history:  []string{"Photosynthesis", "mitosis"},
			query:    "photosynthesis",
			expected: []string{"photosynthesis", "mitosis"},
		},
		{
			name:     "query is trimmed before insertion",
			history:  []string{"mitosis"},
			query:    "  photosynthesis  ",
			expected: []string{"photosynthesis", "mitosis"},
		},
		{
			name:     "blank query leaves history unchanged",
			history:  []string{"mitosis"},
			query:    "   ",
			expected: []string{"mitosis"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, PushSearchQuery(tc.history, tc.query))
		})
	}
}

func TestPushSearchQueryBound(t *testing.T) {
	t.Parallel()

	var history []string
	for i := 0; i < SearchHistoryLimit*2; i++ {
		history = PushSearchQuery(history, fmt.Sprintf("query %d", i))
	}

	assert.Len(t, history, SearchHistoryLimit)

	// Most recent first; the oldest entries fell off the end.
	assert.Equal(t, "query 19", history[0])
	assert.Equal(t, "query 10", history[SearchHistoryLimit-1])
}

func TestPushSearchQueryDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	history := []string{"alpha", "beta"}
	_ = PushSearchQuery(history, "gamma")

	assert.Equal(t, []string{"alpha", "beta"}, history)
}
