package region

import (
	"math"

	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/core/subsets"
)

// EmptyArea is the area below which a region counts as empty.
const EmptyArea = 1e-9

// Region is one membership pattern of a diagram together with its boundary.
type Region struct {
	Key        subsets.Key `json:"key"`
	Size       float64     `json:"size"`
	Area       float64     `json:"area"`
	TargetArea float64     `json:"target_area"`
	Arcs       []geom.Arc  `json:"arcs,omitempty"`

	circles []geom.Circle
}

// Empty reports whether the region has no geometric area.
func (r *Region) Empty() bool { return r.Area <= EmptyArea }

// Residual returns the difference between the drawn and the requested area.
func (r *Region) Residual() float64 { return r.Area - r.TargetArea }

// Inside reports whether the region lies inside circle i.
func (r *Region) Inside(i int) bool { return r.Key.Contains(i) }

// Contains reports whether p lies strictly inside the region.
func (r *Region) Contains(p geom.Point) bool {
	if len(r.circles) == 0 {
		return false
	}
	for i, c := range r.circles {
		if c.BoundaryDistance(p) < geom.Eps {
			return false
		}
		if c.Contains(p) != r.Inside(i) {
			return false
		}
	}
	return true
}

// Distance returns the distance from p to the nearest boundary arc.
func (r *Region) Distance(p geom.Point) float64 {
	if len(r.Arcs) == 0 {
		return 0
	}
	d := math.Inf(1)
	for _, a := range r.Arcs {
		d = math.Min(d, a.Distance(p))
	}
	return d
}

// Bounds returns the bounding box of the region's boundary. The box is empty
// for a region without arcs.
func (r *Region) Bounds() geom.Rect {
	if len(r.Arcs) == 0 {
		return geom.Rect{}
	}
	b := r.Arcs[0].Bounds()
	for _, a := range r.Arcs[1:] {
		b = b.Union(a.Bounds())
	}
	return b
}

// Loops groups the boundary arcs into closed loops, for callers that draw
// the region as a filled path.
func (r *Region) Loops() [][]geom.Arc {
	return chain(r.Arcs)
}

// Compute returns one region per membership key of sizes, in canonical
// order. unit converts a region size into the target area used for
// residuals.
func Compute(circles []geom.Circle, sizes subsets.Vector, unit float64) []Region {
	arity := len(circles)
	keys := subsets.Keys(arity)
	regions := make([]Region, len(keys))
	for i, k := range keys {
		regions[i] = Region{Key: k, circles: circles}
		if i < len(sizes) {
			regions[i].Size = sizes[i]
			regions[i].TargetArea = sizes[i] * unit
		}
	}

	for _, b := range boundary(circles) {
		regions[b.mask-1].Arcs = append(regions[b.mask-1].Arcs, b.arc)
	}
	for i := range regions {
		regions[i].Area = area(regions[i].Arcs)
	}
	return regions
}

// Areas returns the area of every region in canonical order. It is the
// allocation-light path used inside the layout optimizer.
func Areas(circles []geom.Circle) []float64 {
	areas := make([]float64, subsets.RegionCount(len(circles)))
	for _, b := range boundary(circles) {
		areas[b.mask-1] += b.arc.GreenArea()
	}
	for i, a := range areas {
		if a < 0 {
			areas[i] = 0
		}
	}
	return areas
}

func area(arcs []geom.Arc) float64 {
	var sum float64
	for _, a := range arcs {
		sum += a.GreenArea()
	}
	return math.Max(sum, 0)
}

// piece is an oriented arc assigned to the region with the given bitmask.
type piece struct {
	mask int
	arc  geom.Arc
}

// boundary splits every circle into arcs and assigns each arc, with the
// proper orientation, to the two regions it separates.
func boundary(circles []geom.Circle) []piece {
	var pieces []piece
	for k, c := range circles {
		if c.R <= geom.Eps {
			continue
		}
		twins, dup := coincident(circles, k)
		if dup {
			continue
		}

		var others []geom.Circle
		for j, o := range circles {
			if j != k && twins&(1<<j) == 0 {
				others = append(others, o)
			}
		}

		for _, a := range split(k, c, geom.SplitAngles(c, others)) {
			m := sample(a, circles, k, twins)
			mask := twins
			for j, o := range circles {
				if j != k && twins&(1<<j) == 0 && o.Contains(m) {
					mask |= 1 << j
				}
			}
			inner := mask | 1<<k
			outer := mask &^ twins
			pieces = append(pieces, piece{mask: inner, arc: a})
			if outer != 0 {
				pieces = append(pieces, piece{mask: outer, arc: a.Reverse()})
			}
		}
	}
	return pieces
}

// coincident returns the bitmask of circles identical to circle k, and
// whether one of them has a lower index (in which case k adds no arcs).
func coincident(circles []geom.Circle, k int) (int, bool) {
	twins := 0
	dup := false
	for j, o := range circles {
		if j == k || o.R <= geom.Eps || !circles[k].Coincident(o) {
			continue
		}
		twins |= 1 << j
		if j < k {
			dup = true
		}
	}
	return twins, dup
}

func split(k int, c geom.Circle, angles []float64) []geom.Arc {
	if len(angles) == 0 {
		return []geom.Arc{{Circle: k, C: c, Start: 0, Sweep: 2 * math.Pi}}
	}
	arcs := make([]geom.Arc, 0, len(angles))
	for i, a0 := range angles {
		a1 := angles[(i+1)%len(angles)]
		if i == len(angles)-1 {
			a1 += 2 * math.Pi
		}
		arcs = append(arcs, geom.Arc{Circle: k, C: c, Start: a0, Sweep: a1 - a0})
	}
	return arcs
}

// sampleFractions are tried in order until one lands clear of every other
// circumference, which matters for tangent circles.
var sampleFractions = []float64{0.5, 0.3, 0.7, 0.15, 0.85}

func sample(a geom.Arc, circles []geom.Circle, k, twins int) geom.Point {
	best, bestClear := a.At(0.5), -1.0
	for _, t := range sampleFractions {
		p := a.At(t)
		clear := math.Inf(1)
		for j, o := range circles {
			if j != k && twins&(1<<j) == 0 && o.R > geom.Eps {
				clear = math.Min(clear, o.BoundaryDistance(p))
			}
		}
		if clear > 1e-7 {
			return p
		}
		if clear > bestClear {
			best, bestClear = p, clear
		}
	}
	return best
}
