package solve

import (
	"math"

	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/core/subsets"
	"github.com/matzehuels/venn/pkg/errors"
)

// Layout is the circle geometry of a diagram.
type Layout struct {
	// Circles holds one circle per set, in set order.
	Circles []geom.Circle `json:"circles"`

	// Scale maps sizes to radii: r = Scale·√total. Zero for the default
	// layout of an all-zero vector.
	Scale float64 `json:"scale"`

	// Unit is the drawn area of one unit of size (π·Scale²).
	Unit float64 `json:"unit"`

	// Residual is the final optimizer objective (3 sets only).
	Residual float64 `json:"residual"`

	// Iterations is the number of optimizer iterations spent (3 sets only).
	Iterations int `json:"iterations"`

	// Degenerate marks the fallback layout used for all-zero input.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Solve computes the layout for v.
func Solve(v subsets.Vector, cfg Config) (Layout, error) {
	if err := v.Validate(); err != nil {
		return Layout{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	switch v.Arity() {
	case subsets.Two:
		return solveTwo(v, cfg), nil
	case subsets.Three:
		return solveThree(v, cfg), nil
	}
	return Layout{}, errors.New(errors.ErrCodeUnsupported, "unsupported set count %d", v.Arity())
}

// Separation returns the center distance at which circles of radii r1 and
// r2 overlap in the target area. Targets at or beyond the feasible range
// clamp to touching (0) or nested (the smaller disc) circles.
func Separation(r1, r2, target float64) float64 {
	lo, hi := math.Abs(r1-r2), r1+r2
	if target <= 0 {
		return hi
	}
	if target >= geom.LensArea(r1, r2, lo)*(1-1e-12) {
		return lo
	}
	for i := 0; i < 200 && hi-lo > 1e-15*(r1+r2); i++ {
		mid := (lo + hi) / 2
		if geom.LensArea(r1, r2, mid) > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// scaling returns the size-to-radius factor for v, or 0 for all-zero input.
func scaling(v subsets.Vector, cfg Config) float64 {
	m := v.MaxSetTotal()
	if m <= 0 {
		return 0
	}
	return cfg.Scale / math.Sqrt(m)
}

func radii(v subsets.Vector, s float64, cfg Config) []float64 {
	floor := cfg.MinRadius * cfg.Scale
	r := make([]float64, v.Arity())
	for i := range r {
		r[i] = math.Max(s*math.Sqrt(v.SetTotal(i)), floor)
	}
	return r
}

func solveTwo(v subsets.Vector, cfg Config) Layout {
	s := scaling(v, cfg)
	if s == 0 {
		return defaultTwo(cfg)
	}
	r := radii(v, s, cfg)
	unit := math.Pi * s * s
	d := Separation(r[0], r[1], v.PairTotal(0, 1)*unit)

	centers := []geom.Point{geom.Pt(0, 0), geom.Pt(d, 0)}
	return Layout{
		Circles: recenter(centers, r),
		Scale:   s,
		Unit:    unit,
	}
}

func defaultTwo(cfg Config) Layout {
	r := cfg.Scale
	return Layout{
		Circles: []geom.Circle{
			{Center: geom.Pt(-r/2, 0), R: r},
			{Center: geom.Pt(r/2, 0), R: r},
		},
		Degenerate: true,
	}
}

func defaultThree(cfg Config) Layout {
	r := cfg.Scale
	d := r / math.Sqrt(3)
	angles := []float64{5 * math.Pi / 6, math.Pi / 6, 3 * math.Pi / 2}
	circles := make([]geom.Circle, 3)
	for i, a := range angles {
		circles[i] = geom.Circle{Center: geom.Pt(d*math.Cos(a), d*math.Sin(a)), R: r}
	}
	return Layout{Circles: circles, Degenerate: true}
}

// recenter moves the area-weighted centroid of the circles to the origin.
func recenter(centers []geom.Point, r []float64) []geom.Circle {
	var c geom.Point
	var w float64
	for i, p := range centers {
		c = c.Add(p.Scale(r[i] * r[i]))
		w += r[i] * r[i]
	}
	c = c.Scale(1 / w)
	circles := make([]geom.Circle, len(centers))
	for i, p := range centers {
		circles[i] = geom.Circle{Center: p.Sub(c), R: r[i]}
	}
	return circles
}
