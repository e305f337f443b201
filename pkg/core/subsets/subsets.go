package subsets

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/venn/pkg/errors"
)

// Supported set counts.
const (
	Two   = 2
	Three = 3
)

// Key is a membership key such as "110".
type Key string

// Vector is the canonical region size vector. Its length is 3 for a 2-set
// diagram and 7 for a 3-set diagram.
type Vector []float64

// RegionCount returns the number of regions for the given set count.
func RegionCount(arity int) int { return 1<<arity - 1 }

// KeyFor returns the membership key of the region with the given bitmask.
func KeyFor(arity, mask int) Key {
	var b strings.Builder
	for i := 0; i < arity; i++ {
		if mask&(1<<i) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return Key(b.String())
}

// Keys returns the membership keys for arity in canonical order.
func Keys(arity int) []Key {
	keys := make([]Key, RegionCount(arity))
	for i := range keys {
		keys[i] = KeyFor(arity, i+1)
	}
	return keys
}

// Mask returns the bitmask encoded by k, or false when k is not a valid
// non-empty membership key for arity.
func (k Key) Mask(arity int) (int, bool) {
	if len(k) != arity {
		return 0, false
	}
	mask := 0
	for i := 0; i < arity; i++ {
		switch k[i] {
		case '1':
			mask |= 1 << i
		case '0':
		default:
			return 0, false
		}
	}
	return mask, mask != 0
}

// Contains reports whether the region k lies inside set i.
func (k Key) Contains(i int) bool {
	return i >= 0 && i < len(k) && k[i] == '1'
}

// Sets returns the number of sets the region belongs to.
func (k Key) Sets() int { return strings.Count(string(k), "1") }

// Arity returns the number of sets described by v, or 0 when the length is
// not a valid vector length.
func (v Vector) Arity() int {
	switch len(v) {
	case 3:
		return Two
	case 7:
		return Three
	}
	return 0
}

// Keys returns the membership keys of v in order.
func (v Vector) Keys() []Key { return Keys(v.Arity()) }

// Size returns the size of region k. Unknown keys report 0.
func (v Vector) Size(k Key) float64 {
	mask, ok := k.Mask(v.Arity())
	if !ok {
		return 0
	}
	return v[mask-1]
}

// SetTotal returns the total size of set i: the sum of every region that
// lies inside it.
func (v Vector) SetTotal(i int) float64 {
	return v.sumWhere(func(mask int) bool { return mask&(1<<i) != 0 })
}

// PairTotal returns the size of the intersection of sets i and j, including
// regions that also belong to a third set.
func (v Vector) PairTotal(i, j int) float64 {
	both := 1<<i | 1<<j
	return v.sumWhere(func(mask int) bool { return mask&both == both })
}

// Total returns the sum of all region sizes.
func (v Vector) Total() float64 {
	return v.sumWhere(func(int) bool { return true })
}

// IsZero reports whether every region is empty.
func (v Vector) IsZero() bool { return v.Total() == 0 }

// MaxSetTotal returns the largest set total.
func (v Vector) MaxSetTotal() float64 {
	var m float64
	for i := 0; i < v.Arity(); i++ {
		m = math.Max(m, v.SetTotal(i))
	}
	return m
}

func (v Vector) sumWhere(match func(mask int) bool) float64 {
	var sum float64
	for i, s := range v {
		if match(i + 1) {
			sum += s
		}
	}
	return sum
}

// Map returns v as a key → size mapping.
func (v Vector) Map() map[Key]float64 {
	m := make(map[Key]float64, len(v))
	for i, k := range v.Keys() {
		m[k] = v[i]
	}
	return m
}

// String formats v as "100=1 010=2 ...".
func (v Vector) String() string {
	parts := make([]string, 0, len(v))
	for i, k := range v.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v[i]))
	}
	return strings.Join(parts, " ")
}

// Validate checks that v has a valid length and that every entry is a
// finite, non-negative number.
func (v Vector) Validate() error {
	arity := v.Arity()
	if arity == 0 {
		return &errors.InvalidSizeError{
			Reason: fmt.Sprintf("expected 3 or 7 values, got %d", len(v)),
		}
	}
	for i, s := range v {
		if err := checkValue(KeyFor(arity, i+1), s); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(k Key, s float64) error {
	switch {
	case math.IsNaN(s) || math.IsInf(s, 0):
		return &errors.InvalidSizeError{Key: string(k), Value: s, Reason: "value must be finite"}
	case s < 0:
		return &errors.InvalidSizeError{Key: string(k), Value: s, Reason: fmt.Sprintf("negative value %g", s)}
	}
	return nil
}
