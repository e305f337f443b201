package label

import (
	"math"

	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/core/region"
)

// refineSteps bounds the compass search that polishes a grid winner.
const refineSteps = 64

// compass holds the eight search directions.
var compass = func() []geom.Point {
	d := make([]geom.Point, 8)
	for i := range d {
		s, c := math.Sincos(float64(i) * math.Pi / 4)
		d[i] = geom.Pt(c, s)
	}
	return d
}()

// Place computes the anchors of every labelled region and of every set.
func Place(regions []region.Region, circles []geom.Circle, cfg Config) *Set {
	var anchors []Anchor
	for i := range regions {
		r := &regions[i]
		if r.Size <= 0 || r.Empty() {
			continue
		}
		p, ok := Inscribed(r, cfg.Grid)
		anchors = append(anchors, Anchor{
			ID:       string(r.Key),
			Kind:     KindRegion,
			Position: p,
			Fallback: !ok,
		})
	}
	for i, p := range SetPositions(circles, cfg.SetLabelOffset) {
		anchors = append(anchors, Anchor{ID: SetID(i), Kind: KindSet, Position: p})
	}
	return newSet(anchors)
}

// Inscribed returns a point strictly inside r that is far from its
// boundary. When no grid candidate lies inside r it returns the center of
// r's bounding box and false.
func Inscribed(r *region.Region, grid int) (geom.Point, bool) {
	b := r.Bounds()
	if b.Empty() {
		return b.Center(), false
	}
	for _, n := range []int{grid, 4 * grid} {
		if p, ok := search(r, b, n); ok {
			return refine(r, p, math.Max(b.Width(), b.Height())/float64(n)), true
		}
	}
	return b.Center(), false
}

// search scans an n×n grid of cell centers over b and returns the interior
// candidate with the largest boundary distance.
func search(r *region.Region, b geom.Rect, n int) (geom.Point, bool) {
	var best geom.Point
	bestD := -1.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := geom.Pt(
				b.Min.X+(float64(i)+0.5)/float64(n)*b.Width(),
				b.Min.Y+(float64(j)+0.5)/float64(n)*b.Height(),
			)
			if !r.Contains(p) {
				continue
			}
			if d := r.Distance(p); d > bestD {
				best, bestD = p, d
			}
		}
	}
	return best, bestD >= 0
}

// refine climbs the boundary distance from p with a shrinking compass step,
// staying inside r.
func refine(r *region.Region, p geom.Point, step float64) geom.Point {
	d := r.Distance(p)
	for k := 0; k < refineSteps && step > geom.Eps; k++ {
		moved := false
		for _, dir := range compass {
			q := p.Add(dir.Scale(step))
			if !r.Contains(q) {
				continue
			}
			if dq := r.Distance(q); dq > d {
				p, d, moved = q, dq, true
			}
		}
		if !moved {
			step /= 2
		}
	}
	return p
}

// SetPositions returns one set-label position per circle, offset by
// offset·max radius beyond the circle along the direction away from the
// centroid of all centers.
func SetPositions(circles []geom.Circle, offset float64) []geom.Point {
	centers := make([]geom.Point, len(circles))
	var rmax float64
	for i, c := range circles {
		centers[i] = c.Center
		rmax = math.Max(rmax, c.R)
	}
	centroid := geom.Centroid(centers)
	gap := offset * rmax

	out := make([]geom.Point, len(circles))
	for i, c := range circles {
		dir := c.Center.Sub(centroid).Unit()
		if dir == (geom.Point{}) {
			dir = defaultDirection(len(circles), i)
		}
		out[i] = c.Center.Add(dir.Scale(c.R + gap))
	}
	return out
}

// defaultDirection is used for circles sitting on the centroid: left and
// right for two sets, up-left, up-right and down for three.
func defaultDirection(n, i int) geom.Point {
	if n == 2 {
		return geom.Pt(float64(2*i-1), 0)
	}
	angles := []float64{5 * math.Pi / 6, math.Pi / 6, 3 * math.Pi / 2}
	s, c := math.Sincos(angles[i%3])
	return geom.Pt(c, s)
}
