package solve

import (
	"math"

	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/core/region"
	"github.com/matzehuels/venn/pkg/core/subsets"
)

// pairs lists the circle index pairs in parameter order.
var pairs = [3][2]int{{0, 1}, {0, 2}, {1, 2}}

// problem is the 3-set least-squares objective over the pairwise center
// distances (AB, AC, BC).
type problem struct {
	r      []float64
	lens   [3]float64 // target pairwise intersection areas
	triple float64    // target triple intersection area
	norm   float64    // squared reference area, keeps the objective scale-free
}

func solveThree(v subsets.Vector, cfg Config) Layout {
	s := scaling(v, cfg)
	if s == 0 {
		return defaultThree(cfg)
	}
	unit := math.Pi * s * s
	p := problem{
		r:      radii(v, s, cfg),
		triple: v.Size("111") * unit,
		norm:   math.Pow(math.Pi*cfg.Scale*cfg.Scale, 2),
	}
	var seed [3]float64
	for n, ij := range pairs {
		p.lens[n] = v.PairTotal(ij[0], ij[1]) * unit
		seed[n] = Separation(p.r[ij[0]], p.r[ij[1]], p.lens[n])
	}

	step := make([]float64, 3)
	for n := range step {
		step[n] = 0.1 * math.Max(seed[n], 0.1*cfg.Scale)
	}
	best, fbest, iters := minimize(p.objective, seed[:], step, cfg.MaxIterations, cfg.Tolerance)

	return Layout{
		Circles:    recenter(p.place(best), p.r),
		Scale:      s,
		Unit:       unit,
		Residual:   fbest,
		Iterations: iters,
	}
}

// place builds the triangle of centers from the three distances. A lies at
// the origin, B on the +x axis and C below it. Distances that violate the
// triangle inequality collapse C onto the x axis.
func (p *problem) place(d []float64) []geom.Point {
	ab, ac, bc := math.Abs(d[0]), math.Abs(d[1]), math.Abs(d[2])
	x := ac
	if ab > geom.Eps {
		x = (ac*ac - bc*bc + ab*ab) / (2 * ab)
	}
	y := -math.Sqrt(math.Max(0, ac*ac-x*x))
	return []geom.Point{geom.Pt(0, 0), geom.Pt(ab, 0), geom.Pt(x, y)}
}

func (p *problem) circles(d []float64) []geom.Circle {
	centers := p.place(d)
	c := make([]geom.Circle, 3)
	for i := range c {
		c[i] = geom.Circle{Center: centers[i], R: p.r[i]}
	}
	return c
}

func (p *problem) objective(d []float64) float64 {
	c := p.circles(d)
	var sum float64
	for n, ij := range pairs {
		i, j := ij[0], ij[1]
		e := geom.LensArea(c[i].R, c[j].R, c[i].Center.Dist(c[j].Center)) - p.lens[n]
		sum += e * e
	}
	e := region.Areas(c)[6] - p.triple
	sum += e * e
	return sum / p.norm
}
