// Package sink renders laid-out diagrams to output formats.
//
// # Overview
//
// A "sink" turns a [diagram.Diagram] into bytes. This package provides:
//
//   - SVG: vector output with stable element IDs and optional hover
//     highlighting
//   - PNG: native raster output (golang.org/x/image), or rsvg-convert on
//     request
//   - PDF: print output via rsvg-convert
//   - JSON: the layout document plus resolved label presentation
//
// # SVG Output
//
// [RenderSVG] returns the document together with [LabelHandles], a mapping
// from label ID ("10", "110", "A") to the element that draws the label, its
// text, font size and pixel position. Callers style or inspect a label
// through its handle instead of searching the output.
//
//	svg, handles, err := sink.RenderSVG(d,
//	    sink.WithStyle(cfg),
//	    sink.WithInteraction(),
//	)
//	fmt.Println(handles["11"].ElementID) // label-11
//
// Regions are filled paths built from their boundary arcs (even-odd fill,
// so holes and disconnected pieces draw correctly), circles are stroked on
// top, and labels come last.
//
// # PDF and PNG Output
//
//	pdf, err := sink.RenderPDF(d, sink.WithPDFSVGOptions(sink.WithStyle(cfg)))
//	png, err := sink.RenderPNG(d, sink.WithPNGStyle(cfg), sink.WithScale(2))
//
// PDF output requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [diagram.Diagram]: github.com/matzehuels/venn/pkg/core/diagram.Diagram
package sink
