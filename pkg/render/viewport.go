package render

import (
	"math"

	"github.com/matzehuels/venn/pkg/core/geom"
)

// Viewport maps layout coordinates to pixels.
type Viewport struct {
	Width, Height float64

	scale  float64
	origin geom.Point // layout point drawn at the canvas center
}

// Fit returns the viewport that draws box b as large as possible on a
// width×height canvas, leaving padding pixels on every side.
func Fit(b geom.Rect, width, height, padding float64) Viewport {
	v := Viewport{Width: width, Height: height, origin: b.Center(), scale: 1}
	w, h := b.Width(), b.Height()
	availW, availH := width-2*padding, height-2*padding
	if w > 0 && h > 0 && availW > 0 && availH > 0 {
		v.scale = math.Min(availW/w, availH/h)
	}
	return v
}

// Scale returns the number of pixels per layout unit.
func (v Viewport) Scale() float64 { return v.scale }

// Point returns the pixel position of layout point p.
func (v Viewport) Point(p geom.Point) (x, y float64) {
	return v.Width/2 + (p.X-v.origin.X)*v.scale, v.Height/2 - (p.Y-v.origin.Y)*v.scale
}

// Length returns a layout distance in pixels.
func (v Viewport) Length(l float64) float64 { return l * v.scale }
