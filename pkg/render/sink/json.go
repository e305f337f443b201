package sink

import (
	"encoding/json"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/errors"
	"github.com/matzehuels/venn/pkg/render/style"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style     style.Config
	withStyle bool
}

// WithJSONStyle resolves label presentation with cfg and records cfg in the
// output, so the document re-renders identically.
func WithJSONStyle(cfg style.Config) JSONOption {
	return func(r *jsonRenderer) { r.style = cfg; r.withStyle = true }
}

type jsonOutput struct {
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Style   *style.Config    `json:"style,omitempty"`
	FitErr  float64          `json:"fit_error"`
	Diagram *diagram.Diagram `json:"diagram"`
	Labels  []LabelHandle    `json:"labels"`
}

// RenderJSON exports the diagram and its resolved labels as a pretty-printed
// JSON document. The document holds:
//
//   - The size vector, circles and layout metadata
//   - Every region with its boundary arcs
//   - Every label anchor, plus its text, font size and pixel position
//   - The style, when given with [WithJSONStyle]
//
// [ReadJSON] reads the document back.
func RenderJSON(d *diagram.Diagram, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{style: style.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	if err := r.style.Validate(); err != nil {
		return nil, err
	}

	out := jsonOutput{
		Width:   r.style.Width,
		Height:  r.style.Height,
		FitErr:  d.FitError(),
		Diagram: d,
		Labels:  resolveLabels(d, r.style, viewport(d, r.style, 1)),
	}
	if r.withStyle {
		out.Style = &r.style
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadJSON decodes a document written by [RenderJSON]. The returned style is
// nil when the document carries none.
func ReadJSON(data []byte) (*diagram.Diagram, *style.Config, error) {
	var in struct {
		Style   *style.Config   `json:"style"`
		Diagram json.RawMessage `json:"diagram"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout document")
	}
	if len(in.Diagram) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "layout document has no diagram")
	}
	var d diagram.Diagram
	if err := json.Unmarshal(in.Diagram, &d); err != nil {
		return nil, nil, err
	}
	return &d, in.Style, nil
}
