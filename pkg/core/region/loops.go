package region

import (
	"math"

	"github.com/matzehuels/venn/pkg/core/geom"
)

// joinTolerance is the gap below which two arc endpoints are joined.
const joinTolerance = 1e-6

// chain orders arcs into closed loops by joining each arc's end point to the
// nearest unused start point.
func chain(arcs []geom.Arc) [][]geom.Arc {
	used := make([]bool, len(arcs))
	var loops [][]geom.Arc
	for i := range arcs {
		if used[i] {
			continue
		}
		used[i] = true
		loop := []geom.Arc{arcs[i]}
		first := arcs[i].StartPoint()
		for !arcs[i].Full() {
			end := loop[len(loop)-1].EndPoint()
			if end.Dist(first) < joinTolerance {
				break
			}
			next, gap := -1, math.Inf(1)
			for j := range arcs {
				if used[j] || arcs[j].Full() {
					continue
				}
				if d := arcs[j].StartPoint().Dist(end); d < gap {
					next, gap = j, d
				}
			}
			if next < 0 || gap > joinTolerance {
				break
			}
			used[next] = true
			loop = append(loop, arcs[next])
		}
		loops = append(loops, loop)
	}
	return loops
}
