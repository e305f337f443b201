package diagram_test

import (
	"fmt"

	"github.com/matzehuels/venn/pkg/core/diagram"
	"github.com/matzehuels/venn/pkg/core/subsets"
)

func ExampleNew() {
	d, err := diagram.New(subsets.Mapping{"10": 1, "01": 2, "11": 3}, diagram.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	c := d.Circles()
	fmt.Printf("A %.3f  B %.3f\n", c[0].R, c[1].R)
	fmt.Println(d.Labels.IDs())
	// Output:
	// A 0.894  B 1.000
	// [10 01 11 A B]
}
