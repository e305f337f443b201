// Package diagram runs the full Venn layout pipeline: size vector, circle
// layout, region geometry and label anchors.
//
// The pipeline is a pure function of its input. Building the same vector
// twice with the same [Config] yields identical diagrams, and diagrams may be
// built concurrently.
//
//	d, err := diagram.New(subsets.Mapping{"10": 1, "01": 2, "11": 3}, diagram.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	ab, _ := d.Label("11")
//	fmt.Println(ab.Position)
//
// A diagram serializes to JSON. Decoding recomputes the region geometry from
// the stored circles, so a decoded diagram answers the same queries as the
// original.
package diagram
