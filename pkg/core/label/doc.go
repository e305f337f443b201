// Package label places text anchors for the regions and sets of a Venn
// diagram.
//
// Region anchors use an inscribed-point heuristic: a grid of candidate
// points over the region's bounding box is filtered to points strictly inside
// the region, the candidate farthest from the region boundary wins, and a
// compass search polishes it. Because membership is tested against the
// circles themselves, crescents and disconnected regions get a point inside
// the region rather than inside its hull. Slivers too thin for the grid fall
// back to the bounding-box center.
//
// Regions of size zero, and regions with no drawn area, get no anchor.
//
// Set anchors sit just outside each circle, on the ray from the centroid of
// all centers through the circle's own center.
//
// Anchors are returned as a [Set] keyed by stable label IDs: the region's
// membership key ("10", "110", ...) or the set letter ("A", "B", "C").
package label
