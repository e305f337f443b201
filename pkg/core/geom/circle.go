package geom

import (
	"math"
	"slices"
)

// Circle is a disc given by center and radius.
type Circle struct {
	Center Point   `json:"center"`
	R      float64 `json:"r"`
}

// Area returns πr².
func (c Circle) Area() float64 { return math.Pi * c.R * c.R }

// Contains reports whether p lies strictly inside c.
func (c Circle) Contains(p Point) bool { return c.Center.Dist(p) < c.R }

// PointAt returns the point of c at angle theta.
func (c Circle) PointAt(theta float64) Point {
	s, co := math.Sincos(theta)
	return Point{c.Center.X + c.R*co, c.Center.Y + c.R*s}
}

// AngleOf returns the angle of p as seen from the center of c.
func (c Circle) AngleOf(p Point) float64 {
	return math.Atan2(p.Y-c.Center.Y, p.X-c.Center.X)
}

// Bounds returns the bounding box of c.
func (c Circle) Bounds() Rect {
	return Rect{
		Min: Point{c.Center.X - c.R, c.Center.Y - c.R},
		Max: Point{c.Center.X + c.R, c.Center.Y + c.R},
	}
}

// Coincident reports whether c and d describe the same circle.
func (c Circle) Coincident(d Circle) bool {
	return c.Center.Dist(d.Center) < Eps && math.Abs(c.R-d.R) < Eps
}

// BoundaryDistance returns the distance from p to the circumference of c.
func (c Circle) BoundaryDistance(p Point) float64 {
	return math.Abs(c.Center.Dist(p) - c.R)
}

// LensArea returns the intersection area of two circles with radii r1 and
// r2 whose centers are d apart.
func LensArea(r1, r2, d float64) float64 {
	if r1 <= 0 || r2 <= 0 || d >= r1+r2 {
		return 0
	}
	if d <= math.Abs(r1-r2) {
		r := math.Min(r1, r2)
		return math.Pi * r * r
	}
	a1 := clampedAcos((d*d + r1*r1 - r2*r2) / (2 * d * r1))
	a2 := clampedAcos((d*d + r2*r2 - r1*r1) / (2 * d * r2))
	k := (-d + r1 + r2) * (d + r1 - r2) * (d - r1 + r2) * (d + r1 + r2)
	return r1*r1*a1 + r2*r2*a2 - 0.5*math.Sqrt(math.Max(0, k))
}

// Intersect returns the crossing points of the circumferences of c and d.
// Tangent, disjoint, nested and coincident circles have no crossings.
func Intersect(c, d Circle) []Point {
	dist := c.Center.Dist(d.Center)
	if dist < Eps || dist >= c.R+d.R-Eps || dist <= math.Abs(c.R-d.R)+Eps {
		return nil
	}
	a := (dist*dist + c.R*c.R - d.R*d.R) / (2 * dist)
	h := math.Sqrt(math.Max(0, c.R*c.R-a*a))
	u := d.Center.Sub(c.Center).Scale(1 / dist)
	mid := c.Center.Add(u.Scale(a))
	n := Point{-u.Y, u.X}.Scale(h)
	return []Point{mid.Add(n), mid.Sub(n)}
}

// SplitAngles returns the sorted, de-duplicated angles in [0, 2π) at which
// the other circles cross c.
func SplitAngles(c Circle, others []Circle) []float64 {
	var angles []float64
	for _, o := range others {
		for _, p := range Intersect(c, o) {
			angles = append(angles, NormAngle(c.AngleOf(p)))
		}
	}
	slices.Sort(angles)
	angles = slices.CompactFunc(angles, func(a, b float64) bool { return math.Abs(b-a) < 1e-12 })
	if n := len(angles); n > 1 && angles[n-1]-angles[0] > 2*math.Pi-1e-12 {
		angles = angles[:n-1]
	}
	return angles
}

// NormAngle maps theta into [0, 2π).
func NormAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

func clampedAcos(x float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, x)))
}
