package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConceptMapValidate(t *testing.T) {
	t.Parallel()

	validMap := func() ConceptMap {
		return ConceptMap{
			Nodes: []ConceptNode{
				{ID: "photosynthesis", Group: 1},
				{ID: "chlorophyll", Group: 1},
				{ID: "glucose", Group: 2},
			},
			Links: []ConceptLink{
				{Source: "photosynthesis", Target: "chlorophyll", Value: 8},
				{Source: "photosynthesis", Target: "glucose", Value: 10},
			},
		}
	}

	t.Run("valid map passes", func(t *testing.T) {
		t.Parallel()

		m := validMap()
		assert.NoError(t, m.Validate())
	})

	t.Run("empty map is valid", func(t *testing.T) {
		t.Parallel()

		m := ConceptMap{}
		assert.NoError(t, m.Validate())
	})

	t.Run("empty node ID is rejected", func(t *testing.T) {
		t.Parallel()

		m := validMap()
		m.Nodes[1].ID = ""
		assert.ErrorIs(t, m.Validate(), ErrConceptNodeIDEmpty)
	})

	t.Run("duplicate node IDs are rejected", func(t *testing.T) {
		t.Parallel()

		m := validMap()
		m.Nodes[2].ID = "photosynthesis"
		assert.ErrorIs(t, m.Validate(), ErrConceptNodeDuplicate)
	})

	t.Run("dangling link source is rejected", func(t *testing.T) {
		t.Parallel()

		m := validMap()
		m.Links[0].Source = "unknown"
		assert.ErrorIs(t, m.Validate(), ErrConceptLinkDangling)
	})

	t.Run("dangling link target is rejected", func(t *testing.T) {
		t.Parallel()

		m := validMap()
		m.Links[1].Target = "unknown"
		assert.ErrorIs(t, m.Validate(), ErrConceptLinkDangling)
	})

	t.Run("link value outside 1..10 is rejected", func(t *testing.T) {
		t.Parallel()

		for _, value := range []int{0, -1, 11} {
			m := validMap()
			m.Links[0].Value = value
			assert.ErrorIs(t, m.Validate(), ErrConceptLinkValueRange, "value %d", value)
		}
	})
}
