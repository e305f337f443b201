package sink

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/errors"
	"github.com/matzehuels/venn/pkg/render"
	"github.com/matzehuels/venn/pkg/render/style"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style style.Config
	scale float64
	rsvg  bool
}

// WithPNGStyle sets the presentation (default [style.Default]).
func WithPNGStyle(cfg style.Config) PNGOption {
	return func(r *pngRenderer) { r.style = cfg }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG renders through SVG and rsvg-convert instead of the native
// rasterizer.
func WithRSVG() PNGOption {
	return func(r *pngRenderer) { r.rsvg = true }
}

// RenderPNG renders d as PNG.
func RenderPNG(d *diagram.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: style.Default(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) || r.scale > 16 {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "png scale must be in (0, 16], got %v", r.scale)
	}
	if r.rsvg {
		svg, _, err := RenderSVG(d, WithStyle(r.style))
		if err != nil {
			return nil, err
		}
		return render.ToPNG(svg, r.scale)
	}
	if err := r.style.Validate(); err != nil {
		return nil, err
	}

	img, err := rasterize(d, r.style, r.scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// rasterize draws d the way RenderSVG does: region fills, circle outlines,
// then labels.
func rasterize(d *diagram.Diagram, cfg style.Config, scale float64) (*image.RGBA, error) {
	w, h := int(math.Ceil(cfg.Width*scale)), int(math.Ceil(cfg.Height*scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if cfg.Background != "" {
		draw.Draw(img, img.Bounds(), image.NewUniform(style.NRGBA(cfg.Background, 1)), image.Point{}, draw.Src)
	}
	vp := viewport(d, cfg, scale)

	z := vector.NewRasterizer(w, h)
	for i := range d.Regions {
		reg := &d.Regions[i]
		if reg.Empty() {
			continue
		}
		z.Reset(w, h)
		for _, loop := range reg.Loops() {
			tracePolygon(z, flatten(loop, vp))
		}
		z.Draw(img, img.Bounds(), image.NewUniform(cfg.RegionNRGBA(reg.Key)), image.Point{})
	}

	if cfg.StrokeWidth > 0 {
		stroke := image.NewUniform(style.NRGBA(cfg.StrokeColor, 1))
		half := cfg.StrokeWidth * scale / 2
		for _, c := range d.Circles() {
			z.Reset(w, h)
			x, y := vp.Point(c.Center)
			r := vp.Length(c.R)
			traceCircle(z, x, y, r+half, false)
			traceCircle(z, x, y, math.Max(0, r-half), true)
			z.Draw(img, img.Bounds(), stroke, image.Point{})
		}
	}

	faces := make(map[float64]font.Face)
	for _, lh := range resolveLabels(d, cfg, vp) {
		if lh.Hidden {
			continue
		}
		size := lh.FontSize * scale
		face, ok := faces[size]
		if !ok {
			var err error
			if face, err = newFace(size); err != nil {
				return nil, err
			}
			faces[size] = face
		}
		drawText(img, face, lh.Text, lh.X, lh.Y, image.NewUniform(style.NRGBA(lh.Color, 1)))
	}
	for _, f := range faces {
		f.Close()
	}
	return img, nil
}

// segmentsPerTurn is the number of line segments per full circle.
const segmentsPerTurn = 180

// flatten converts a loop of arcs into a polygon in pixel coordinates.
func flatten(loop []geom.Arc, vp render.Viewport) [][2]float32 {
	var pts [][2]float32
	for _, a := range loop {
		n := max(4, int(math.Ceil(math.Abs(a.Sweep)/(2*math.Pi)*segmentsPerTurn)))
		for k := 0; k < n; k++ {
			x, y := vp.Point(a.At(float64(k) / float64(n)))
			pts = append(pts, [2]float32{float32(x), float32(y)})
		}
	}
	return pts
}

func tracePolygon(z *vector.Rasterizer, pts [][2]float32) {
	if len(pts) < 3 {
		return
	}
	z.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		z.LineTo(p[0], p[1])
	}
	z.ClosePath()
}

// traceCircle adds a circle to z; reverse flips its winding so that it cuts
// a hole into an enclosing circle.
func traceCircle(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	if r <= 0 {
		return
	}
	pts := make([][2]float32, segmentsPerTurn)
	for k := range pts {
		theta := 2 * math.Pi * float64(k) / segmentsPerTurn
		if reverse {
			theta = -theta
		}
		s, c := math.Sincos(theta)
		pts[k] = [2]float32{float32(cx + r*c), float32(cy + r*s)}
	}
	tracePolygon(z, pts)
}

var regularFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

func newFace(size float64) (font.Face, error) {
	f, err := regularFont()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create font face")
	}
	return face, nil
}

// drawText draws s centered on (x, y).
func drawText(dst draw.Image, face font.Face, s string, x, y float64, col image.Image) {
	width := font.MeasureString(face, s)
	m := face.Metrics()
	baseline := y + float64(m.Ascent-m.Descent)/64/2
	d := &font.Drawer{
		Dst:  dst,
		Src:  col,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x*64) - width/2, Y: fixed.Int26_6(baseline * 64)},
	}
	d.DrawString(s)
}
