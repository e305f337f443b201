// Package style holds the presentation settings of a rendered diagram.
//
// Every option is enumerated in [Config] and [Default] documents its
// value; nothing falls back to an implicit library default. Presentation
// never feeds back into geometry: changing a font size or a color moves no
// circle and no anchor.
//
// Individual labels are styled through [Config.Overrides], keyed by the
// stable label IDs of the layout: membership keys ("10", "110") for region
// labels and set letters ("A", "B", "C") for set labels.
//
//	cfg := style.Default()
//	cfg.SubsetFontSize = 14
//	cfg.Overrides = map[string]style.LabelStyle{"11": {Color: "#c00"}}
package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/venn/pkg/errors"
)

// Defaults.
const (
	DefaultWidth          = 800
	DefaultHeight         = 600
	DefaultPadding        = 20
	DefaultSubsetFontSize = 10
	DefaultSetFontSize    = 12
	DefaultFontFamily     = "sans-serif"
	DefaultAlpha          = 0.4
	DefaultStrokeWidth    = 1
	DefaultStrokeColor    = "#333333"
	DefaultLabelColor     = "#222222"
	DefaultBackground     = "#ffffff"
	DefaultLabelFormat    = "%g"
)

// DefaultSetColors are the fill colors of sets A, B and C.
var DefaultSetColors = []string{"#ff6b6b", "#4ecdc4", "#5b8def"}

// DefaultSetLabels are the names drawn next to the circles.
var DefaultSetLabels = []string{"A", "B", "C"}

// Config is the full set of presentation options.
type Config struct {
	// Canvas size and inner margin in pixels.
	Width   float64 `json:"width" toml:"width"`
	Height  float64 `json:"height" toml:"height"`
	Padding float64 `json:"padding" toml:"padding"`

	// Background is the canvas color; empty leaves it transparent.
	Background string `json:"background" toml:"background"`

	FontFamily string `json:"font_family" toml:"font_family"`

	// SubsetFontSize applies to region (subset size) labels only.
	SubsetFontSize float64 `json:"subset_font_size" toml:"subset_font_size"`

	// SetFontSize applies to set name labels only.
	SetFontSize float64 `json:"set_font_size" toml:"set_font_size"`

	LabelColor string `json:"label_color" toml:"label_color"`

	// SetColors are indexed by set; regions blend the colors of their
	// member sets.
	SetColors []string `json:"set_colors" toml:"set_colors"`
	Alpha     float64  `json:"alpha" toml:"alpha"`

	StrokeWidth float64 `json:"stroke_width" toml:"stroke_width"`
	StrokeColor string  `json:"stroke_color" toml:"stroke_color"`

	// SetLabels are the set names, indexed by set.
	SetLabels []string `json:"set_labels" toml:"set_labels"`

	// LabelFormat formats region sizes with fmt.
	LabelFormat string `json:"label_format" toml:"label_format"`

	// Overrides restyle single labels by label ID.
	Overrides map[string]LabelStyle `json:"overrides,omitempty" toml:"overrides"`
}

// LabelStyle overrides the presentation of one label. Zero fields keep the
// value derived from [Config].
type LabelStyle struct {
	FontSize float64 `json:"font_size,omitempty" toml:"font_size"`
	Color    string  `json:"color,omitempty" toml:"color"`
	Text     string  `json:"text,omitempty" toml:"text"`
	Hidden   bool    `json:"hidden,omitempty" toml:"hidden"`
}

// Default returns the default presentation.
func Default() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Padding:        DefaultPadding,
		Background:     DefaultBackground,
		FontFamily:     DefaultFontFamily,
		SubsetFontSize: DefaultSubsetFontSize,
		SetFontSize:    DefaultSetFontSize,
		LabelColor:     DefaultLabelColor,
		SetColors:      append([]string(nil), DefaultSetColors...),
		Alpha:          DefaultAlpha,
		StrokeWidth:    DefaultStrokeWidth,
		StrokeColor:    DefaultStrokeColor,
		SetLabels:      append([]string(nil), DefaultSetLabels...),
		LabelFormat:    DefaultLabelFormat,
	}
}

// Validate checks every option.
func (c Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) || math.IsInf(c.Width, 0) || math.IsInf(c.Height, 0) {
		return errors.New(errors.ErrCodeInvalidStyle, "canvas must have a positive size, got %vx%v", c.Width, c.Height)
	}
	if !(c.Padding >= 0) || 2*c.Padding >= math.Min(c.Width, c.Height) {
		return errors.New(errors.ErrCodeInvalidStyle, "padding %v does not fit a %vx%v canvas", c.Padding, c.Width, c.Height)
	}
	if err := errors.ValidateFontSize("subset font size", c.SubsetFontSize); err != nil {
		return err
	}
	if err := errors.ValidateFontSize("set font size", c.SetFontSize); err != nil {
		return err
	}
	if strings.ContainsAny(c.FontFamily, `<>"`) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid font family %q", c.FontFamily)
	}
	colors := append([]string{c.LabelColor, c.StrokeColor}, c.SetColors...)
	if c.Background != "" {
		colors = append(colors, c.Background)
	}
	for _, col := range colors {
		if err := errors.ValidateColor(col); err != nil {
			return err
		}
	}
	if len(c.SetColors) == 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "at least one set color is required")
	}
	if !(c.Alpha >= 0 && c.Alpha <= 1) {
		return errors.New(errors.ErrCodeInvalidStyle, "alpha must be in [0, 1], got %v", c.Alpha)
	}
	if !(c.StrokeWidth >= 0) || math.IsInf(c.StrokeWidth, 0) {
		return errors.New(errors.ErrCodeInvalidStyle, "stroke width must be non-negative")
	}
	for _, l := range c.SetLabels {
		if err := errors.ValidateLabelText(l); err != nil {
			return err
		}
	}
	if out := fmt.Sprintf(c.LabelFormat, 1.5); strings.Contains(out, "%!") {
		return errors.New(errors.ErrCodeInvalidStyle, "label format %q must format one number", c.LabelFormat)
	}
	for id, o := range c.Overrides {
		if err := o.validate(id); err != nil {
			return err
		}
	}
	return nil
}

func (o LabelStyle) validate(id string) error {
	if o.FontSize != 0 {
		if err := errors.ValidateFontSize("font size of label "+id, o.FontSize); err != nil {
			return err
		}
	}
	if o.Color != "" {
		if err := errors.ValidateColor(o.Color); err != nil {
			return err
		}
	}
	return errors.ValidateLabelText(o.Text)
}
