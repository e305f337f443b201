package geom

import "math"

// Arc is an oriented piece of a circle's circumference. A positive Sweep
// runs counter-clockwise from Start, a negative one clockwise. A full circle
// has |Sweep| = 2π.
type Arc struct {
	Circle int     `json:"circle"` // index of the circle in the layout
	C      Circle  `json:"c"`
	Start  float64 `json:"start"`
	Sweep  float64 `json:"sweep"`
}

// Full reports whether a covers the whole circle.
func (a Arc) Full() bool { return math.Abs(a.Sweep) >= 2*math.Pi-1e-12 }

// At returns the point at fraction t ∈ [0, 1] along a.
func (a Arc) At(t float64) Point { return a.C.PointAt(a.Start + t*a.Sweep) }

// StartPoint returns the first point of a.
func (a Arc) StartPoint() Point { return a.At(0) }

// EndPoint returns the last point of a.
func (a Arc) EndPoint() Point { return a.At(1) }

// Reverse returns a traversed in the opposite direction.
func (a Arc) Reverse() Arc {
	a.Start += a.Sweep
	a.Sweep = -a.Sweep
	return a
}

// GreenArea returns the contribution of a to ½∮(x dy − y dx). Summed over
// a closed, counter-clockwise boundary it yields the enclosed area.
func (a Arc) GreenArea() float64 {
	t0, t1 := a.Start, a.Start+a.Sweep
	r, cx, cy := a.C.R, a.C.Center.X, a.C.Center.Y
	return 0.5 * (r*r*(t1-t0) + r*cx*(math.Sin(t1)-math.Sin(t0)) - r*cy*(math.Cos(t1)-math.Cos(t0)))
}

// Covers reports whether the ray from the circle center at angle theta
// passes through a.
func (a Arc) Covers(theta float64) bool {
	if a.Full() {
		return true
	}
	if a.Sweep >= 0 {
		return NormAngle(theta-a.Start) <= a.Sweep
	}
	return NormAngle(a.Start-theta) <= -a.Sweep
}

// Distance returns the distance from p to the nearest point of a.
func (a Arc) Distance(p Point) float64 {
	if a.C.Center.Dist(p) < Eps || a.Covers(a.C.AngleOf(p)) {
		return a.C.BoundaryDistance(p)
	}
	return math.Min(p.Dist(a.StartPoint()), p.Dist(a.EndPoint()))
}

// Bounds returns the bounding box of a.
func (a Arc) Bounds() Rect {
	if a.Full() {
		return a.C.Bounds()
	}
	r := Rect{Min: a.StartPoint(), Max: a.StartPoint()}.Extend(a.EndPoint())
	for k := 0; k < 4; k++ {
		theta := float64(k) * math.Pi / 2
		if a.Covers(theta) {
			r = r.Extend(a.C.PointAt(theta))
		}
	}
	return r
}
