// Package solve computes area-proportional circle layouts for 2- and 3-set
// Venn diagrams.
//
// # Radii
//
// Every circle's area is proportional to its set total: r = Scale·√total,
// where Scale is chosen so that the largest set gets the configured
// reference radius ([Config.Scale], 1.0 by default). Radii below
// [Config.MinRadius] (a fraction of the reference radius) are raised to it
// so that every circle stays drawable.
//
// # Two Sets
//
// The overlap of two circles shrinks strictly as their centers move apart,
// from the whole smaller disc at |r1−r2| to nothing at r1+r2. [Separation]
// bisects that interval for the distance whose lens area equals the
// requested intersection; the result is exact up to floating point.
//
// # Three Sets
//
// Three pairwise lenses and a triple overlap cannot in general be matched at
// once. The solver seeds each pair at its exact two-set separation, builds
// the triangle of centers by the law of cosines, and refines the three
// distances with a Nelder–Mead simplex that minimizes the squared error of
// the pairwise and triple intersection areas. The iteration budget is hard;
// the best layout found so far is always returned and infeasible targets
// are never an error.
//
// All-zero input produces a classic, equal-circle default layout.
package solve
