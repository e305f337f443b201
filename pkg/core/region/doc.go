// Package region computes the boundary of every region of a 2- or 3-circle
// Venn diagram.
//
// A region is the set of points inside exactly the circles named by its
// membership key. Its boundary is a collection of oriented circular arcs:
// arcs of member circles run counter-clockwise, arcs of non-member circles
// run clockwise, so the enclosed area follows from Green's theorem and holes
// and disconnected pieces need no special treatment.
//
// Every circle is split at its crossings with the others. Each resulting arc
// separates two regions whose keys differ only in the arc's own circle; the
// remaining bits come from sampling a point on the arc. Nested, disjoint,
// tangent and coincident circles all fall out of the same rule, and a region
// with no arcs is simply empty.
//
//	regions := region.Compute(circles, sizes, unit)
//	for _, r := range regions {
//	    fmt.Println(r.Key, r.Area, r.Empty())
//	}
package region
