package solve

import (
	"math"
	"slices"
)

// Nelder–Mead coefficients.
const (
	nmReflect  = 1.0
	nmExpand   = 2.0
	nmContract = 0.5
	nmShrink   = 0.5
)

// nmStall is the number of consecutive iterations with the objective spread
// within tolerance after which the search stops even if the simplex has not
// collapsed. Flat objectives, such as disjoint circles whose lens areas stay
// zero, end here instead of spending the whole budget.
const nmStall = 10

type vertex struct {
	x []float64
	f float64
}

// minimize runs a Nelder–Mead simplex search from x0 with initial edge
// lengths step. It stops after maxIter iterations, once the simplex has
// collapsed with an objective spread within tol, or once the spread has
// stayed within tol for nmStall iterations without the best value
// improving. It returns the best vertex, its value and the number of
// iterations used.
func minimize(f func([]float64) float64, x0, step []float64, maxIter int, tol float64) ([]float64, float64, int) {
	n := len(x0)
	simplex := make([]vertex, n+1)
	simplex[0] = vertex{x: slices.Clone(x0), f: f(x0)}
	for i := 0; i < n; i++ {
		x := slices.Clone(x0)
		x[i] += step[i]
		simplex[i+1] = vertex{x: x, f: f(x)}
	}

	iter, flat := 0, 0
	prev := math.Inf(1)
	for ; iter < maxIter; iter++ {
		slices.SortStableFunc(simplex, func(a, b vertex) int {
			switch {
			case a.f < b.f:
				return -1
			case a.f > b.f:
				return 1
			}
			return 0
		})
		best, worst := simplex[0], simplex[n]
		spread := worst.f - best.f
		if spread <= tol && diameter(simplex) <= 1e-12 {
			break
		}
		if spread <= tol && best.f >= prev-tol {
			if flat++; flat >= nmStall {
				break
			}
		} else {
			flat = 0
		}
		prev = best.f

		centroid := make([]float64, n)
		for _, v := range simplex[:n] {
			for i := range centroid {
				centroid[i] += v.x[i] / float64(n)
			}
		}

		xr := lerp(centroid, worst.x, -nmReflect)
		fr := f(xr)
		switch {
		case fr < best.f:
			xe := lerp(centroid, worst.x, -nmExpand)
			if fe := f(xe); fe < fr {
				simplex[n] = vertex{xe, fe}
			} else {
				simplex[n] = vertex{xr, fr}
			}
		case fr < simplex[n-1].f:
			simplex[n] = vertex{xr, fr}
		default:
			var xc []float64
			if fr < worst.f {
				xc = lerp(centroid, xr, nmContract)
			} else {
				xc = lerp(centroid, worst.x, nmContract)
			}
			if fc := f(xc); fc < math.Min(fr, worst.f) {
				simplex[n] = vertex{xc, fc}
				continue
			}
			for i := 1; i <= n; i++ {
				x := lerp(best.x, simplex[i].x, nmShrink)
				simplex[i] = vertex{x, f(x)}
			}
		}
	}

	best := simplex[0]
	for _, v := range simplex[1:] {
		if v.f < best.f {
			best = v
		}
	}
	return best.x, best.f, iter
}

// lerp returns a + t·(b − a).
func lerp(a, b []float64, t float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + t*(b[i]-a[i])
	}
	return out
}

func diameter(simplex []vertex) float64 {
	var d float64
	for _, v := range simplex[1:] {
		for i := range v.x {
			d = math.Max(d, math.Abs(v.x[i]-simplex[0].x[i]))
		}
	}
	return d
}
