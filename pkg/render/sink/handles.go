package sink

import (
	"math"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/core/label"
	"github.com/matzehuels/venn/pkg/core/subsets"
	"github.com/matzehuels/venn/pkg/render"
	"github.com/matzehuels/venn/pkg/render/style"
)

// LabelHandle describes one rendered label.
type LabelHandle struct {
	ID        string     `json:"id"`
	Kind      label.Kind `json:"kind"`
	ElementID string     `json:"element_id,omitempty"` // empty for hidden labels
	Text      string     `json:"text"`
	FontSize  float64    `json:"font_size"`
	Color     string     `json:"color"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Hidden    bool       `json:"hidden,omitempty"`
}

// LabelHandles maps label IDs to their rendered labels.
type LabelHandles map[string]LabelHandle

// frameMargin widens the diagram box, as a fraction of the largest radius,
// to leave room for set label text.
const frameMargin = 0.15

// viewport fits d onto the canvas of cfg, scaled by scale.
func viewport(d *diagram.Diagram, cfg style.Config, scale float64) render.Viewport {
	b := d.Bounds()
	var rmax float64
	for _, c := range d.Circles() {
		rmax = math.Max(rmax, c.R)
	}
	m := geom.Pt(frameMargin*rmax, frameMargin*rmax)
	b = geom.Rect{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
	return render.Fit(b, cfg.Width*scale, cfg.Height*scale, cfg.Padding*scale)
}

// resolveLabels returns the presentation of every anchor of d, in order.
func resolveLabels(d *diagram.Diagram, cfg style.Config, vp render.Viewport) []LabelHandle {
	anchors := d.Labels.All()
	out := make([]LabelHandle, 0, len(anchors))
	for _, a := range anchors {
		var size float64
		if a.Kind == label.KindRegion {
			if r, ok := d.Region(subsets.Key(a.ID)); ok {
				size = r.Size
			}
		}
		l := cfg.Resolve(a, size)
		x, y := vp.Point(a.Position)
		h := LabelHandle{
			ID:       a.ID,
			Kind:     a.Kind,
			Text:     l.Text,
			FontSize: l.FontSize,
			Color:    l.Color,
			X:        x,
			Y:        y,
			Hidden:   l.Hidden,
		}
		if !h.Hidden {
			h.ElementID = "label-" + a.ID
		}
		out = append(out, h)
	}
	return out
}

// Labels returns the handles RenderSVG would produce for d under cfg,
// without rendering.
func Labels(d *diagram.Diagram, cfg style.Config) (LabelHandles, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return handleMap(resolveLabels(d, cfg, viewport(d, cfg, 1))), nil
}

func handleMap(handles []LabelHandle) LabelHandles {
	m := make(LabelHandles, len(handles))
	for _, h := range handles {
		m[h.ID] = h
	}
	return m
}
