// Package pkg provides the libraries behind venn, an area-proportional Venn
// diagram generator for two or three sets.
//
// # Overview
//
// A diagram is built in four steps, each in its own package:
//
//	region sizes
//	     ↓
//	[core/subsets] (canonical size vector)
//	     ↓
//	[core/solve] (circle radii and centers)
//	     ↓
//	[core/region] + [core/label] (region boundaries and label anchors)
//	     ↓
//	[render/sink] (SVG, PNG, PDF or JSON)
//
// [core/diagram] bundles the first three steps:
//
//	v, _ := subsets.Infer(subsets.Tuple{3, 2, 1})
//	d, _ := diagram.Build(v, diagram.DefaultConfig())
//	svg, labels, _ := sink.RenderSVG(d, sink.WithStyle(style.Default()))
//
// # Main Packages
//
// [core/geom] - Points, circles, arcs and the circle intersection math the
// other core packages share.
//
// [render/style] - Presentation options, including separate font sizes for
// region and set labels and per-label overrides.
//
// [pipeline] - Cached layout and render used by the CLI and the HTTP API.
//
// [cache] - File, Redis and null cache backends with versioned keys.
//
// [config] - TOML configuration for layout, labels, style, cache and server.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Error codes shared across packages and mapped to HTTP status
// codes by the API.
//
// [core/subsets]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/core/subsets
// [core/solve]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/core/solve
// [core/region]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/core/region
// [core/label]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/core/label
// [core/diagram]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/core/diagram
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/core/geom
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/render/sink
// [render/style]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/render/style
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/venn/pkg/errors
package pkg
