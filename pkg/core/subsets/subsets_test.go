package subsets

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/venn/pkg/errors"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		arity int
		want  []Key
	}{
		{Two, []Key{"10", "01", "11"}},
		{Three, []Key{"100", "010", "110", "001", "101", "011", "111"}},
	}
	for _, tt := range tests {
		if got := Keys(tt.arity); !slices.Equal(got, tt.want) {
			t.Errorf("Keys(%d) = %v, want %v", tt.arity, got, tt.want)
		}
	}
}

func TestKeyMask(t *testing.T) {
	tests := []struct {
		key    Key
		arity  int
		want   int
		wantOK bool
	}{
		{"10", 2, 1, true},
		{"11", 2, 3, true},
		{"101", 3, 5, true},
		{"00", 2, 0, false},
		{"1x", 2, 0, false},
		{"110", 2, 0, false},
		{"", 3, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.key.Mask(tt.arity)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Key(%q).Mask(%d) = %d, %v; want %d, %v", tt.key, tt.arity, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestVectorTotals(t *testing.T) {
	v := Vector{1, 2, 3, 4, 5, 6, 7}

	if got := v.SetTotal(0); got != 1+3+5+7 {
		t.Errorf("SetTotal(A) = %v, want 16", got)
	}
	if got := v.SetTotal(1); got != 2+3+6+7 {
		t.Errorf("SetTotal(B) = %v, want 18", got)
	}
	if got := v.SetTotal(2); got != 4+5+6+7 {
		t.Errorf("SetTotal(C) = %v, want 22", got)
	}
	if got := v.PairTotal(0, 2); got != 5+7 {
		t.Errorf("PairTotal(A,C) = %v, want 12", got)
	}
	if got := v.Size("011"); got != 6 {
		t.Errorf("Size(011) = %v, want 6", got)
	}
	if got := v.Total(); got != 28 {
		t.Errorf("Total() = %v, want 28", got)
	}
}

func TestNormalizeTuple(t *testing.T) {
	tests := []struct {
		name    string
		in      Tuple
		arity   int
		wantErr bool
	}{
		{"two sets", Tuple{1, 2, 3}, Two, false},
		{"three sets", Tuple{1, 1, 1, 1, 1, 1, 1}, Three, false},
		{"all zero", Tuple{0, 0, 0}, Two, false},
		{"wrong length", Tuple{1, 2}, Two, true},
		{"length for other arity", Tuple{1, 2, 3}, Three, true},
		{"negative", Tuple{1, -2, 3}, Two, true},
		{"nan", Tuple{1, math.NaN(), 3}, Two, true},
		{"inf", Tuple{1, 2, math.Inf(1)}, Two, true},
		{"bad arity", Tuple{1}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Normalize(tt.in, tt.arity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidSize) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSize)
				}
				return
			}
			if !slices.Equal([]float64(v), []float64(tt.in)) {
				t.Errorf("Normalize() = %v, want %v", v, tt.in)
			}
		})
	}
}

func TestNormalizeTupleCopies(t *testing.T) {
	in := Tuple{1, 2, 3}
	v, err := Normalize(in, Two)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = 99
	if v[0] != 1 {
		t.Error("Normalize should not alias the input tuple")
	}
}

func TestNormalizeMapping(t *testing.T) {
	tests := []struct {
		name    string
		in      Mapping
		arity   int
		want    Vector
		wantErr bool
	}{
		{"full two", Mapping{"10": 1, "01": 2, "11": 3}, Two, Vector{1, 2, 3}, false},
		{"missing keys default zero", Mapping{"11": 3}, Two, Vector{0, 0, 3}, false},
		{"three sets", Mapping{"100": 1, "111": 7}, Three, Vector{1, 0, 0, 0, 0, 0, 7}, false},
		{"empty mapping", Mapping{}, Two, Vector{0, 0, 0}, false},
		{"invalid key", Mapping{"12": 1}, Two, nil, true},
		{"all-zero key", Mapping{"000": 1}, Three, nil, true},
		{"key for wrong arity", Mapping{"110": 1}, Two, nil, true},
		{"negative", Mapping{"10": -1}, Two, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Normalize(tt.in, tt.arity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !slices.Equal(v, tt.want) {
				t.Errorf("Normalize() = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestFromSets(t *testing.T) {
	t.Run("two sets", func(t *testing.T) {
		in := FromSets([]string{"a", "b", "c"}, []string{"c", "d", "d"})
		v, err := Normalize(in, Two)
		if err != nil {
			t.Fatal(err)
		}
		if want := (Vector{2, 1, 1}); !slices.Equal(v, want) {
			t.Errorf("got %v, want %v", v, want)
		}
	})

	t.Run("three sets", func(t *testing.T) {
		in := FromSets([]int{1, 2, 3, 7}, []int{2, 3, 4}, []int{3, 4, 5, 7})
		v, err := Infer(in)
		if err != nil {
			t.Fatal(err)
		}
		// 1:A 2:AB 3:ABC 4:BC 5:C 7:AC
		if want := (Vector{1, 0, 1, 1, 1, 1, 1}); !slices.Equal(v, want) {
			t.Errorf("got %v, want %v", v, want)
		}
	})

	t.Run("set count mismatch", func(t *testing.T) {
		_, err := Normalize(FromSets([]int{1}, []int{2}), Three)
		if !errors.Is(err, errors.ErrCodeInvalidSize) {
			t.Errorf("error = %v, want INVALID_SIZE", err)
		}
	})

	t.Run("unsupported count", func(t *testing.T) {
		if _, err := Infer(FromSets([]int{1})); err == nil {
			t.Error("expected error for one set")
		}
	})
}

func TestInfer(t *testing.T) {
	v, err := Infer(Tuple{1, 2, 3, 4, 5, 6, 7})
	if err != nil || v.Arity() != Three {
		t.Errorf("Infer(7-tuple) = %v, %v; want arity 3", v, err)
	}
	v, err = Infer(Mapping{"10": 4})
	if err != nil || v.Arity() != Two {
		t.Errorf("Infer(mapping) = %v, %v; want arity 2", v, err)
	}
	if _, err := Infer(nil); err == nil {
		t.Error("Infer(nil) should fail")
	}
}

func TestParseTuple(t *testing.T) {
	got, err := ParseTuple("1, 2.5,3")
	if err != nil {
		t.Fatal(err)
	}
	if want := (Tuple{1, 2.5, 3}); !slices.Equal(got, want) {
		t.Errorf("ParseTuple() = %v, want %v", got, want)
	}
	if _, err := ParseTuple("1,x,3"); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("ParseTuple(bad) error = %v", err)
	}
}

func TestParseMapping(t *testing.T) {
	got, err := ParseMapping([]string{"110=3", " 001 = 1.5"})
	if err != nil {
		t.Fatal(err)
	}
	if got["110"] != 3 || got["001"] != 1.5 {
		t.Errorf("ParseMapping() = %v", got)
	}
	for _, bad := range [][]string{{"110"}, {"110=x"}} {
		if _, err := ParseMapping(bad); err == nil {
			t.Errorf("ParseMapping(%v) should fail", bad)
		}
	}
}

func TestVectorString(t *testing.T) {
	if got := (Vector{1, 2, 3}).String(); got != "10=1 01=2 11=3" {
		t.Errorf("String() = %q", got)
	}
}
