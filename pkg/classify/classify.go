// Package classify separates the empty cells of a rasterized grid into
// exterior space and interior volume.
package classify

import (
	"github.com/chazu/voxblock/pkg/grid"
	"github.com/chazu/voxblock/pkg/progress"
)

// Classify flood-fills from the grid corners through 6-connected
// Unclassified cells. Everything the fill cannot reach that is still
// Unclassified is enclosed by the surface and becomes Interior; the reached
// cells are put back to Unclassified. Surface cells are left untouched.
//
// A corner that is already occupied does not seed the fill, so a mesh that
// touches every corner of its bounding box classifies its whole empty
// volume as Interior. Running Classify twice gives the same grid.
//
// Progress is reported once per visited cell. Cancellation is polled at the
// same rate and leaves the grid with Exterior cells in it; callers must
// discard it.
func Classify(g *grid.Grid, hooks progress.Hooks) error {
	hooks.Reset(0, g.Volume())
	if g.Empty() {
		return nil
	}

	queue := make([]int, 0, g.Volume()/8+1)
	for _, i := range g.Corners() {
		if g.AtIndex(i) == grid.Unclassified {
			g.SetIndex(i, grid.Exterior)
			queue = append(queue, i)
		}
	}

	for head := 0; head < len(queue); head++ {
		if hooks.Stop() {
			return progress.ErrCancelled
		}
		x, y, z := g.Coords(queue[head])
		for _, d := range grid.Directions {
			c, ok := g.Neighbor(x, y, z, d)
			if !ok || c != grid.Unclassified {
				continue
			}
			dx, dy, dz := d.Offset()
			n := g.Index(x+dx, y+dy, z+dz)
			g.SetIndex(n, grid.Exterior)
			queue = append(queue, n)
		}
		hooks.Increment()
	}

	g.Replace(grid.Unclassified, grid.Interior)
	g.Replace(grid.Exterior, grid.Unclassified)
	return nil
}
