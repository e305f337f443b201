// Package render holds the pieces shared by every diagram output format.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). The PDF sink depends on it; the PNG sink
// rasterizes natively and only falls back to rsvg-convert on request.
//
//	svg, _, err := sink.RenderSVG(d)
//	pdf, err := render.ToPDF(svg)
//
// # Viewport
//
// Diagrams are laid out in mathematical coordinates (y up, radius about 1).
// [Fit] maps a layout box onto a pixel canvas with y pointing down, keeping
// the aspect ratio and centering the diagram inside the padding.
//
// Subpackages:
//   - [style]: presentation settings and per-label overrides
//   - [sink]: SVG, PNG, PDF and JSON output
//
// [style]: github.com/matzehuels/venn/pkg/render/style
// [sink]: github.com/matzehuels/venn/pkg/render/sink
package render
