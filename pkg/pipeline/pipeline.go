// Package pipeline runs the layout → render pipeline shared by the CLI and
// the HTTP API.
//
// The pipeline has two stages:
//
//  1. Layout: solve circles, compute regions, place labels ([diagram.Build])
//  2. Render: produce SVG, PNG, PDF or JSON output from the diagram
//
// A [Runner] caches both stages, so identical requests skip the solver and
// the rasterizer.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Sizes:   subsets.Vector{3, 2, 1},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts["svg"]
//	box := result.Labels["11"]
package pipeline

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venn/pkg/cache"
	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/subsets"
	"github.com/matzehuels/venn/pkg/errors"
	"github.com/matzehuels/venn/pkg/render/sink"
	"github.com/matzehuels/venn/pkg/render/style"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultPNGScale is the raster scale applied to the canvas size.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options configures one pipeline run. It is the JSON body of API requests.
type Options struct {
	// Sizes is the normalized region size vector (3 or 7 entries).
	Sizes subsets.Vector `json:"sizes"`

	// Diagram tunes the solver and label placement. The zero value means
	// diagram.DefaultConfig().
	Diagram diagram.Config `json:"diagram"`

	// Style configures rendering. The zero value means style.Default().
	Style style.Config `json:"style"`

	Formats     []string `json:"formats,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Title       string   `json:"title,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// DefaultOptions returns options with every default filled in. Decoding a
// partial JSON request over it keeps the unspecified defaults.
func DefaultOptions() Options {
	return Options{
		Diagram:  diagram.DefaultConfig(),
		Style:    style.Default(),
		Formats:  []string{FormatSVG},
		PNGScale: DefaultPNGScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Diagram *diagram.Diagram

	// LayoutHash is the content hash of the diagram's JSON form.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Labels maps every label ID to its rendered position and style.
	Labels sink.LabelHandles

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sets       int
	Regions    int
	Iterations int
	FitError   float64
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the diagram came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks every field and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the size vector and diagram configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Sizes.Validate(); err != nil {
		return err
	}
	return o.Diagram.Validate()
}

// SetLayoutDefaults fills a zero diagram configuration and the logger.
func (o *Options) SetLayoutDefaults() {
	if o.Diagram == (diagram.Config{}) {
		o.Diagram = diagram.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender checks formats, style and raster scale.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale <= 0 || o.PNGScale > 16 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be in (0, 16], got %v", o.PNGScale)
	}
	return o.Style.Validate()
}

// SetRenderDefaults fills formats, style, raster scale and the logger.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if reflect.ValueOf(o.Style).IsZero() {
		o.Style = style.Default()
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	l, b := o.Diagram.Layout, o.Diagram.Labels
	return cache.LayoutKeyOpts{
		Scale:          l.Scale,
		MinRadius:      l.MinRadius,
		MaxIterations:  l.MaxIterations,
		Tolerance:      l.Tolerance,
		Grid:           b.Grid,
		SetLabelOffset: b.SetLabelOffset,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		StyleHash: o.StyleHash(),
		Title:     o.Title,
	}
	switch format {
	case FormatSVG, FormatPDF:
		k.Interactive = o.Interactive && format == FormatSVG
	case FormatPNG:
		k.Scale = o.PNGScale
	}
	return k
}

// StyleHash returns the content hash of the style configuration.
func (o *Options) StyleHash() string {
	data, _ := json.Marshal(o.Style)
	return cache.Hash(data)
}
