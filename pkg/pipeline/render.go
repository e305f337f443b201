package pipeline

import (
	"fmt"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/render/sink"
)

// Render produces every format in opts.Formats from d. The returned handles
// describe the labels as drawn.
func Render(d *diagram.Diagram, opts Options) (map[string][]byte, sink.LabelHandles, error) {
	opts.SetRenderDefaults()

	handles, err := sink.Labels(d, opts.Style)
	if err != nil {
		return nil, nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(d, format, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, handles, nil
}

func renderFormat(d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		data, _, err := sink.RenderSVG(d, svgOptions(opts, true)...)
		return data, err
	case FormatPNG:
		return sink.RenderPNG(d, sink.WithPNGStyle(opts.Style), sink.WithScale(opts.PNGScale))
	case FormatPDF:
		return sink.RenderPDF(d, sink.WithPDFSVGOptions(svgOptions(opts, false)...))
	case FormatJSON:
		return sink.RenderJSON(d, sink.WithJSONStyle(opts.Style))
	default:
		return nil, ValidateFormat(format)
	}
}

// svgOptions builds SVG options; scripts are dropped for print output.
func svgOptions(opts Options, interactive bool) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(opts.Style)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if interactive && opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}
