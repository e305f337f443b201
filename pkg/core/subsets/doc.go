// Package subsets defines the canonical region size vector for 2- and 3-set
// Venn diagrams.
//
// # Membership Keys
//
// Every region of a diagram is named by a membership key: one character per
// set, '1' when the region lies inside that set. For two sets the keys are
// "10", "01" and "11"; for three sets they are, in canonical order:
//
//	100 010 110 001 101 011 111
//
// Position i of a [Vector] holds the region whose bitmask is i+1, where bit 0
// is set A, bit 1 is set B and bit 2 is set C.
//
// # Input Forms
//
// Raw input arrives in one of three shapes, each a variant of [Input]:
//
//	subsets.Tuple{1, 2, 3}                         // ordered sizes
//	subsets.Mapping{"10": 1, "11": 3}              // missing keys are 0
//	subsets.FromSets([]string{"x", "y"}, []string{"y"}) // raw set contents
//
// [Normalize] turns any of them into a validated [Vector]. Invalid input
// yields an [errors.InvalidSizeError].
package subsets
