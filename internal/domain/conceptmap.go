package domain

import (
	"errors"
	"fmt"
)

// Concept map validation errors
var (
	ErrConceptNodeIDEmpty    = errors.New("concept node ID cannot be empty")
	ErrConceptNodeDuplicate  = errors.New("concept node IDs must be unique")
	ErrConceptLinkDangling   = errors.New("concept link references an unknown node")
	ErrConceptLinkValueRange = errors.New("concept link value must be between 1 and 10")
)

// ConceptNode is a single concept in the map. The ID doubles as the
// display label; Group is a small integer used only for coloring.
type ConceptNode struct {
	ID    string `json:"id"`
	Group int    `json:"group"`
}

// ConceptLink is a directed relationship between two concepts with a
// strength value from 1 (weak) to 10 (strong).
type ConceptLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// ConceptMap is the node/link graph produced by the generation backend
// for visualizing relationships between the concepts in a material.
type ConceptMap struct {
	Nodes []ConceptNode `json:"nodes"`
	Links []ConceptLink `json:"links"`
}

// Validate checks the graph invariants: unique non-empty node IDs, every
// link endpoint referencing an existing node, and link values in 1..10.
// This is a caller-level concern; the generation client does not reject
// maps that fail these checks.
func (m *ConceptMap) Validate() error {
	ids := make(map[string]struct{}, len(m.Nodes))
	for _, node := range m.Nodes {
		if node.ID == "" {
			return ErrConceptNodeIDEmpty
		}
		if _, dup := ids[node.ID]; dup {
			return fmt.Errorf("%w: %q", ErrConceptNodeDuplicate, node.ID)
		}
		ids[node.ID] = struct{}{}
	}

	for _, link := range m.Links {
		if _, ok := ids[link.Source]; !ok {
			return fmt.Errorf("%w: source %q", ErrConceptLinkDangling, link.Source)
		}
		if _, ok := ids[link.Target]; !ok {
			return fmt.Errorf("%w: target %q", ErrConceptLinkDangling, link.Target)
		}
		if link.Value < 1 || link.Value > 10 {
			return fmt.Errorf("%w: got %d", ErrConceptLinkValueRange, link.Value)
		}
	}

	return nil
}
