package geom

import (
	"math"
	"testing"
)

const tol = 1e-9

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestLensArea(t *testing.T) {
	tests := []struct {
		name      string
		r1, r2, d float64
		want      float64
	}{
		{"disjoint", 1, 1, 3, 0},
		{"touching", 1, 1, 2, 0},
		{"concentric", 1, 0.5, 0, math.Pi * 0.25},
		{"nested tangent", 2, 1, 1, math.Pi},
		{"zero radius", 0, 1, 0.5, 0},
		// Two unit circles one radius apart: 2π/3 − √3/2.
		{"classic", 1, 1, 1, 2*math.Pi/3 - math.Sqrt(3)/2},
		// Unit circles whose centers are √2 apart overlap in π/2 − 1.
		{"quarter", 1, 1, math.Sqrt2, math.Pi/2 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LensArea(tt.r1, tt.r2, tt.d); !approx(got, tt.want, tol) {
				t.Errorf("LensArea(%v, %v, %v) = %v, want %v", tt.r1, tt.r2, tt.d, got, tt.want)
			}
		})
	}
}

func TestLensAreaMonotone(t *testing.T) {
	r1, r2 := 1.0, 0.7
	prev := math.Inf(1)
	for i := 0; i <= 200; i++ {
		d := float64(i) / 200 * (r1 + r2 + 0.2)
		a := LensArea(r1, r2, d)
		if a > prev+1e-12 {
			t.Fatalf("LensArea increased at d=%v: %v > %v", d, a, prev)
		}
		prev = a
	}
}

func TestIntersect(t *testing.T) {
	a := Circle{Center: Pt(0, 0), R: 1}
	b := Circle{Center: Pt(1, 0), R: 1}

	pts := Intersect(a, b)
	if len(pts) != 2 {
		t.Fatalf("got %d points, want 2", len(pts))
	}
	for _, p := range pts {
		if !approx(a.Center.Dist(p), 1, tol) || !approx(b.Center.Dist(p), 1, tol) {
			t.Errorf("point %v not on both circles", p)
		}
		if !approx(p.X, 0.5, tol) || !approx(math.Abs(p.Y), math.Sqrt(3)/2, tol) {
			t.Errorf("unexpected point %v", p)
		}
	}

	tests := []struct {
		name string
		c, d Circle
	}{
		{"disjoint", a, Circle{Center: Pt(5, 0), R: 1}},
		{"tangent", a, Circle{Center: Pt(2, 0), R: 1}},
		{"nested", a, Circle{Center: Pt(0.1, 0), R: 0.2}},
		{"coincident", a, a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if pts := Intersect(tt.c, tt.d); len(pts) != 0 {
				t.Errorf("Intersect() = %v, want none", pts)
			}
		})
	}
}

func TestSplitAngles(t *testing.T) {
	a := Circle{Center: Pt(0, 0), R: 1}
	b := Circle{Center: Pt(1, 0), R: 1}

	single := SplitAngles(a, []Circle{b})
	if len(single) != 2 || !approx(single[0], math.Pi/3, tol) || !approx(single[1], 5*math.Pi/3, tol) {
		t.Errorf("SplitAngles(one circle) = %v, want [π/3, 5π/3]", single)
	}

	c := Circle{Center: Pt(0, 1), R: 1}
	if got := SplitAngles(a, []Circle{b, c}); len(got) != 4 {
		t.Errorf("SplitAngles(two circles) = %v, want 4 angles", got)
	}

	angles := SplitAngles(a, []Circle{b, b})
	if len(angles) != 2 {
		t.Fatalf("SplitAngles() = %v, want 2 unique angles", angles)
	}
	if !approx(angles[0], math.Pi/3, tol) || !approx(angles[1], 5*math.Pi/3, tol) {
		t.Errorf("SplitAngles() = %v, want [π/3, 5π/3]", angles)
	}
}

func TestArcGreenAreaFullCircle(t *testing.T) {
	c := Circle{Center: Pt(3, -2), R: 1.5}
	ccw := Arc{C: c, Start: 0.3, Sweep: 2 * math.Pi}
	if got := ccw.GreenArea(); !approx(got, c.Area(), tol) {
		t.Errorf("ccw GreenArea() = %v, want %v", got, c.Area())
	}
	if got := ccw.Reverse().GreenArea(); !approx(got, -c.Area(), tol) {
		t.Errorf("cw GreenArea() = %v, want %v", got, -c.Area())
	}
}

func TestArcGreenAreaLens(t *testing.T) {
	// The lens of two unit circles one apart is bounded by one arc of each.
	a := Circle{Center: Pt(0, 0), R: 1}
	b := Circle{Center: Pt(1, 0), R: 1}
	arcA := Arc{C: a, Start: -math.Pi / 3, Sweep: 2 * math.Pi / 3}
	arcB := Arc{C: b, Start: 2 * math.Pi / 3, Sweep: 2 * math.Pi / 3}
	got := arcA.GreenArea() + arcB.GreenArea()
	if want := LensArea(1, 1, 1); !approx(got, want, tol) {
		t.Errorf("lens area = %v, want %v", got, want)
	}
}

func TestArcDistance(t *testing.T) {
	c := Circle{Center: Pt(0, 0), R: 1}
	upper := Arc{C: c, Start: 0, Sweep: math.Pi}
	tests := []struct {
		name string
		arc  Arc
		p    Point
		want float64
	}{
		{"above covered", upper, Pt(0, 2), 1},
		{"center", upper, Pt(0, 0), 1},
		{"below uncovers", upper, Pt(0, -2), math.Hypot(1, 2)},
		{"clockwise arc", upper.Reverse(), Pt(0, 0.5), 0.5},
		{"full circle", Arc{C: c, Sweep: -2 * math.Pi}, Pt(0, -0.25), 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arc.Distance(tt.p); !approx(got, tt.want, tol) {
				t.Errorf("Distance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestArcBounds(t *testing.T) {
	c := Circle{Center: Pt(0, 0), R: 1}
	b := Arc{C: c, Start: 0, Sweep: math.Pi}.Bounds()
	if !approx(b.Min.X, -1, tol) || !approx(b.Max.X, 1, tol) || !approx(b.Max.Y, 1, tol) || !approx(b.Min.Y, 0, tol) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestRect(t *testing.T) {
	r := Rect{Min: Pt(0, 0), Max: Pt(2, 1)}
	s := Rect{Min: Pt(1, -1), Max: Pt(3, 0.5)}
	in := r.Intersect(s)
	if in.Min != Pt(1, 0) || in.Max != Pt(2, 0.5) {
		t.Errorf("Intersect() = %+v", in)
	}
	if u := r.Union(s); u.Min != Pt(0, -1) || u.Max != Pt(3, 1) {
		t.Errorf("Union() = %+v", u)
	}
	if c := r.Center(); c != Pt(1, 0.5) {
		t.Errorf("Center() = %v", c)
	}
	if !(Rect{Min: Pt(0, 0), Max: Pt(0, 1)}).Empty() {
		t.Error("zero-width rect should be empty")
	}
}
