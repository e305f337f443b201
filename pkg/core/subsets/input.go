package subsets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/venn/pkg/errors"
)

// Input is raw subset-size input awaiting normalization.
// The variants are [Tuple], [Mapping] and the value returned by [FromSets].
type Input interface {
	// arity returns the set count implied by the input, or 0 if unknown.
	arity() int
	normalize(arity int) (Vector, error)
}

// Tuple lists region sizes in canonical key order.
type Tuple []float64

// Mapping assigns sizes to membership keys. Keys that are absent are 0.
type Mapping map[string]float64

// Normalize validates in against the requested set count and returns the
// canonical vector.
func Normalize(in Input, arity int) (Vector, error) {
	if arity != Two && arity != Three {
		return nil, &errors.InvalidSizeError{Reason: fmt.Sprintf("unsupported set count %d (want 2 or 3)", arity)}
	}
	if in == nil {
		return nil, &errors.InvalidSizeError{Reason: "no sizes given"}
	}
	return in.normalize(arity)
}

// Infer normalizes in using the set count it implies: the tuple length, the
// key length of a mapping, or the number of raw sets.
func Infer(in Input) (Vector, error) {
	if in == nil {
		return nil, &errors.InvalidSizeError{Reason: "no sizes given"}
	}
	return Normalize(in, in.arity())
}

func (t Tuple) arity() int { return Vector(t).Arity() }

func (t Tuple) normalize(arity int) (Vector, error) {
	if want := RegionCount(arity); len(t) != want {
		return nil, &errors.InvalidSizeError{
			Reason: fmt.Sprintf("expected %d values for %d sets, got %d", want, arity, len(t)),
		}
	}
	v := make(Vector, len(t))
	copy(v, t)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (m Mapping) arity() int {
	for k := range m {
		return len(k)
	}
	return 0
}

func (m Mapping) normalize(arity int) (Vector, error) {
	v := make(Vector, RegionCount(arity))
	for k, s := range m {
		mask, ok := Key(k).Mask(arity)
		if !ok {
			return nil, &errors.InvalidSizeError{
				Key:    k,
				Reason: fmt.Sprintf("not a membership key for %d sets", arity),
			}
		}
		if err := checkValue(Key(k), s); err != nil {
			return nil, err
		}
		v[mask-1] = s
	}
	return v, nil
}

type setsInput struct {
	sets   int
	counts Vector
}

func (s setsInput) arity() int { return s.sets }

func (s setsInput) normalize(arity int) (Vector, error) {
	if s.sets != arity {
		return nil, &errors.InvalidSizeError{
			Reason: fmt.Sprintf("expected %d sets, got %d", arity, s.sets),
		}
	}
	return s.counts, nil
}

// FromSets counts region sizes from the raw contents of two or three sets.
// Duplicate elements within one set count once.
func FromSets[T comparable](sets ...[]T) Input {
	in := setsInput{sets: len(sets)}
	if in.sets != Two && in.sets != Three {
		return in
	}
	masks := make(map[T]int)
	var order []T
	for i, set := range sets {
		for _, el := range set {
			if _, seen := masks[el]; !seen {
				order = append(order, el)
			}
			masks[el] |= 1 << i
		}
	}
	in.counts = make(Vector, RegionCount(in.sets))
	for _, el := range order {
		in.counts[masks[el]-1]++
	}
	return in
}

// ParseTuple parses comma-separated sizes such as "1,2,3".
func ParseTuple(s string) (Tuple, error) {
	fields := strings.Split(s, ",")
	t := make(Tuple, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &errors.InvalidSizeError{Key: fmt.Sprintf("#%d", i+1), Reason: fmt.Sprintf("not a number: %q", f)}
		}
		t = append(t, val)
	}
	return t, nil
}

// ParseMapping parses "key=size" pairs such as ["110=3", "001=1"].
func ParseMapping(pairs []string) (Mapping, error) {
	m := make(Mapping, len(pairs))
	for _, p := range pairs {
		k, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, &errors.InvalidSizeError{Reason: fmt.Sprintf("expected key=size, got %q", p)}
		}
		k = strings.TrimSpace(k)
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, &errors.InvalidSizeError{Key: k, Reason: fmt.Sprintf("not a number: %q", val)}
		}
		m[k] = f
	}
	return m, nil
}
