package label

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/venn/pkg/core/geom"
)

// Kind tells region anchors from set anchors.
type Kind string

const (
	KindRegion Kind = "region"
	KindSet    Kind = "set"
)

// Anchor is the position of one label.
type Anchor struct {
	ID       string     `json:"id"`
	Kind     Kind       `json:"kind"`
	Position geom.Point `json:"position"`

	// Fallback marks a region anchor placed at the bounding-box center
	// because no interior candidate was found.
	Fallback bool `json:"fallback,omitempty"`
}

// SetID returns the label ID of set i: "A", "B", "C".
func SetID(i int) string { return string(rune('A' + i)) }

// Set is an ordered collection of anchors with lookup by ID. Region anchors
// come first in membership-key order, followed by set anchors.
type Set struct {
	anchors []Anchor
	index   map[string]int
}

func newSet(anchors []Anchor) *Set {
	s := &Set{anchors: anchors, index: make(map[string]int, len(anchors))}
	for i, a := range anchors {
		s.index[a.ID] = i
	}
	return s
}

// Get returns the anchor with the given ID.
func (s *Set) Get(id string) (Anchor, bool) {
	if s == nil {
		return Anchor{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Anchor{}, false
	}
	return s.anchors[i], true
}

// Has reports whether an anchor with the given ID exists.
func (s *Set) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Len returns the number of anchors.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.anchors)
}

// All returns every anchor in order.
func (s *Set) All() []Anchor {
	if s == nil {
		return nil
	}
	return slices.Clone(s.anchors)
}

// IDs returns every label ID in order.
func (s *Set) IDs() []string {
	ids := make([]string, 0, s.Len())
	for _, a := range s.All() {
		ids = append(ids, a.ID)
	}
	return ids
}

// Of returns the anchors of one kind, in order.
func (s *Set) Of(k Kind) []Anchor {
	var out []Anchor
	for _, a := range s.All() {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

func (s *Set) MarshalJSON() ([]byte, error) {
	anchors := s.All()
	if anchors == nil {
		anchors = []Anchor{}
	}
	return json.Marshal(anchors)
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var anchors []Anchor
	if err := json.Unmarshal(data, &anchors); err != nil {
		return err
	}
	*s = *newSet(anchors)
	return nil
}
