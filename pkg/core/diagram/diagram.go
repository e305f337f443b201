package diagram

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/venn/pkg/core/geom"
	"github.com/matzehuels/venn/pkg/core/label"
	"github.com/matzehuels/venn/pkg/core/region"
	"github.com/matzehuels/venn/pkg/core/solve"
	"github.com/matzehuels/venn/pkg/core/subsets"
	"github.com/matzehuels/venn/pkg/errors"
)

// Config groups the layout and label placement settings.
type Config struct {
	Layout solve.Config `json:"layout" toml:"layout"`
	Labels label.Config `json:"labels" toml:"labels"`
}

// DefaultConfig returns the default pipeline settings.
func DefaultConfig() Config {
	return Config{Layout: solve.DefaultConfig(), Labels: label.DefaultConfig()}
}

// Validate checks both halves of the configuration.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	return c.Labels.Validate()
}

// Diagram is a laid-out Venn diagram.
type Diagram struct {
	Sizes   subsets.Vector
	Layout  solve.Layout
	Regions []region.Region
	Labels  *label.Set
}

// New normalizes in and builds its diagram.
func New(in subsets.Input, cfg Config) (*Diagram, error) {
	v, err := subsets.Infer(in)
	if err != nil {
		return nil, err
	}
	return Build(v, cfg)
}

// Build lays out v.
func Build(v subsets.Vector, cfg Config) (*Diagram, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l, err := solve.Solve(v, cfg.Layout)
	if err != nil {
		return nil, err
	}
	regions := region.Compute(l.Circles, v, l.Unit)
	return &Diagram{
		Sizes:   v,
		Layout:  l,
		Regions: regions,
		Labels:  label.Place(regions, l.Circles, cfg.Labels),
	}, nil
}

// Arity returns the number of sets.
func (d *Diagram) Arity() int { return len(d.Layout.Circles) }

// Circles returns the circle of every set, in set order.
func (d *Diagram) Circles() []geom.Circle { return d.Layout.Circles }

// Region returns the region with membership key k.
func (d *Diagram) Region(k subsets.Key) (*region.Region, bool) {
	for i := range d.Regions {
		if d.Regions[i].Key == k {
			return &d.Regions[i], true
		}
	}
	return nil, false
}

// Label returns the anchor of a region ("110") or set ("A") label.
func (d *Diagram) Label(id string) (label.Anchor, bool) { return d.Labels.Get(id) }

// FitError returns the total absolute difference between drawn and requested
// region areas, relative to the total requested area. It is 0 for a perfect
// fit and for all-zero input.
func (d *Diagram) FitError() float64 {
	var diff, total float64
	for i := range d.Regions {
		diff += math.Abs(d.Regions[i].Residual())
		total += d.Regions[i].TargetArea
	}
	if total == 0 {
		return 0
	}
	return diff / total
}

// Bounds returns the box holding every circle and every label anchor.
func (d *Diagram) Bounds() geom.Rect {
	var b geom.Rect
	for i, c := range d.Layout.Circles {
		if i == 0 {
			b = c.Bounds()
			continue
		}
		b = b.Union(c.Bounds())
	}
	for _, a := range d.Labels.All() {
		b = b.Extend(a.Position)
	}
	return b
}

// document is the JSON form of a diagram.
type document struct {
	Sets    int             `json:"sets"`
	Sizes   subsets.Vector  `json:"sizes"`
	Layout  solve.Layout    `json:"layout"`
	Regions []region.Region `json:"regions"`
	Labels  *label.Set      `json:"labels"`
}

func (d *Diagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Sets:    d.Arity(),
		Sizes:   d.Sizes,
		Layout:  d.Layout,
		Regions: d.Regions,
		Labels:  d.Labels,
	})
}

func (d *Diagram) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	if err := doc.Sizes.Validate(); err != nil {
		return err
	}
	if len(doc.Layout.Circles) != doc.Sizes.Arity() {
		return errors.New(errors.ErrCodeInvalidFormat, "diagram has %d circles for %d sets",
			len(doc.Layout.Circles), doc.Sizes.Arity())
	}
	if doc.Labels == nil {
		doc.Labels = &label.Set{}
	}
	*d = Diagram{
		Sizes:   doc.Sizes,
		Layout:  doc.Layout,
		Regions: region.Compute(doc.Layout.Circles, doc.Sizes, doc.Layout.Unit),
		Labels:  doc.Labels,
	}
	return nil
}
