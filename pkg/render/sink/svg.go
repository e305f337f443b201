package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/core/label"
	"github.com/matzehuels/venn/pkg/core/region"
	"github.com/matzehuels/venn/pkg/render"
	"github.com/matzehuels/venn/pkg/render/style"
)

const regionInteractionCSS = `
    .region { transition: fill-opacity 0.2s ease; }
    .region.highlight { fill-opacity: 0.75; }
    .label.highlight { font-weight: bold; }`

const regionInteractionJS = `
    function highlight(key, on) {
      document.querySelectorAll('[data-key="' + key + '"]').forEach(el => el.classList.toggle('highlight', on));
    }
    document.querySelectorAll('.region').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.key, true));
      el.addEventListener('mouseleave', () => highlight(el.dataset.key, false));
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       style.Config
	interactive bool
	title       string
}

// WithStyle sets the presentation (default [style.Default]).
func WithStyle(cfg style.Config) SVGOption { return func(r *svgRenderer) { r.style = cfg } }

// WithInteraction adds hover highlighting of regions and their labels.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: style.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders d as an SVG document and returns the handles of every
// label it drew.
func RenderSVG(d *diagram.Diagram, opts ...SVGOption) ([]byte, LabelHandles, error) {
	r := newSVGRenderer(opts...)
	cfg := r.style
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	vp := viewport(d, cfg, 1)
	handles := resolveLabels(d, cfg, vp)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if cfg.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", cfg.Background)
	}

	renderRegions(&buf, d, cfg, vp)
	renderCircles(&buf, d, cfg, vp)
	renderLabels(&buf, handles, cfg)
	if r.interactive {
		renderInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), handleMap(handles), nil
}

func renderRegions(buf *bytes.Buffer, d *diagram.Diagram, cfg style.Config, vp render.Viewport) {
	buf.WriteString(`  <g class="regions">` + "\n")
	for i := range d.Regions {
		reg := &d.Regions[i]
		if reg.Empty() {
			continue
		}
		fmt.Fprintf(buf, `    <path id="region-%s" class="region" data-key="%s" d="%s" fill="%s" fill-opacity="%.2f" fill-rule="evenodd"/>`+"\n",
			reg.Key, reg.Key, regionPath(reg, vp), cfg.RegionHex(reg.Key), cfg.Alpha)
	}
	buf.WriteString("  </g>\n")
}

func renderCircles(buf *bytes.Buffer, d *diagram.Diagram, cfg style.Config, vp render.Viewport) {
	fmt.Fprintf(buf, `  <g class="circles" fill="none" stroke="%s" stroke-width="%.2f">`+"\n", cfg.StrokeColor, cfg.StrokeWidth)
	for i, c := range d.Circles() {
		x, y := vp.Point(c.Center)
		fmt.Fprintf(buf, `    <circle id="set-%s" class="set" cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n",
			label.SetID(i), x, y, vp.Length(c.R))
	}
	buf.WriteString("  </g>\n")
}

func renderLabels(buf *bytes.Buffer, handles []LabelHandle, cfg style.Config) {
	fmt.Fprintf(buf, `  <g class="labels" font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n", cfg.FontFamily)
	for _, h := range handles {
		if h.Hidden {
			continue
		}
		fmt.Fprintf(buf, `    <text id="%s" class="label label-%s" data-key="%s" x="%.2f" y="%.2f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			h.ElementID, h.Kind, h.ID, h.X, h.Y, h.FontSize, h.Color, escapeXML(h.Text))
	}
	buf.WriteString("  </g>\n")
}

func renderInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", regionInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", regionInteractionJS)
}

// regionPath builds SVG path data for the closed loops of r. Counter-clockwise
// layout arcs become clockwise screen arcs, so the sweep flag follows the
// sign of the arc sweep.
func regionPath(r *region.Region, vp render.Viewport) string {
	var buf bytes.Buffer
	for _, loop := range r.Loops() {
		for n, a := range loop {
			if n == 0 {
				x, y := vp.Point(a.StartPoint())
				fmt.Fprintf(&buf, "M%.2f,%.2f", x, y)
			}
			if a.Full() {
				half := geom.Arc{Circle: a.Circle, C: a.C, Start: a.Start, Sweep: a.Sweep / 2}
				writeArc(&buf, half, vp)
				half.Start += half.Sweep
				writeArc(&buf, half, vp)
				continue
			}
			writeArc(&buf, a, vp)
		}
		buf.WriteString("Z")
	}
	return buf.String()
}

func writeArc(buf *bytes.Buffer, a geom.Arc, vp render.Viewport) {
	large, sweep := 0, 0
	if math.Abs(a.Sweep) > math.Pi {
		large = 1
	}
	if a.Sweep > 0 {
		sweep = 1
	}
	rad := vp.Length(a.C.R)
	x, y := vp.Point(a.EndPoint())
	fmt.Fprintf(buf, "A%.2f,%.2f 0 %d %d %.2f,%.2f", rad, rad, large, sweep, x, y)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
