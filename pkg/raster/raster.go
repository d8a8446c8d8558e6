// Package raster marks the grid cells a triangle surface passes through by
// casting axis-aligned rays through every triangle.
package raster

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/grid"
	"github.com/chazu/voxblock/pkg/progress"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon keeps ray origins off cell edges. Hits closer than Epsilon to
// each other on one scan line count as a single crossing, and a crossing
// that lands on a cell boundary is moved by Epsilon into the solid side.
const Epsilon = 4.56e-6

// Sampling selects how many parallel rays are cast per scan cell.
type Sampling int

const (
	Center  Sampling = iota // one ray through the cell centre
	Corners                 // four rays just inside the cell corners
)

func (s Sampling) String() string {
	switch s {
	case Center:
		return "center"
	case Corners:
		return "corners"
	default:
		return fmt.Sprintf("Sampling(%d)", int(s))
	}
}

// offsets returns the ray positions within a scan cell.
func (s Sampling) offsets() [][2]float64 {
	if s == Corners {
		return [][2]float64{
			{Epsilon, Epsilon},
			{1 - Epsilon, Epsilon},
			{Epsilon, 1 - Epsilon},
			{1 - Epsilon, 1 - Epsilon},
		}
	}
	return [][2]float64{{0.5, 0.5}}
}

// Rasterize marks as Solid every cell of g that a ray hits. Triangles must be
// in grid-local space, where cell (x, y, z) covers [x, x+1)×[y, y+1)×[z, z+1).
//
// Each triangle is scanned along all three axes so that faces nearly
// parallel to one axis are still caught by the others. The side of a face
// that is solid comes from the order of crossings along each scan line, not
// from the winding, so inward-wound and mirrored meshes rasterize like
// outward-wound ones. Hits outside the grid are dropped.
//
// The hooks get one Increment and one cancellation poll per triangle; on
// cancellation Rasterize returns progress.ErrCancelled and the grid is left
// unmarked.
func Rasterize(g *grid.Grid, tris []geom.Triangle, s Sampling, hooks progress.Hooks) error {
	hooks.Reset(0, len(tris))
	offsets := s.offsets()
	lines := make(scanLines)
	for _, t := range tris {
		if hooks.Stop() {
			return progress.ErrCancelled
		}
		if !g.Empty() && !t.Degenerate() {
			lines.add(g, t, offsets)
		}
		hooks.Increment()
	}
	for key, hits := range lines {
		key.mark(g, hits)
	}
	return nil
}

// scanKey identifies one ray: its axis, its scan cell (i, j) in the two
// other axes and the sample within that cell.
type scanKey struct {
	axis   geom.Axis
	i, j   int
	sample int
}

// crossing is a triangle hit on a scan line. facing records the sign of the
// triangle normal along the ray; only whether two hits differ matters.
type crossing struct {
	depth  float64
	facing bool
}

type scanLines map[scanKey][]crossing

// add records every crossing of t with the rays that pass through the grid.
func (l scanLines) add(g *grid.Grid, t geom.Triangle, offsets [][2]float64) {
	n := t.Normal()
	bb := t.Bounds()

	for _, a := range geom.Axes {
		na := geom.Component(n, a)
		if na == 0 {
			// The triangle contains the ray direction; rays along a
			// graze it at best.
			continue
		}
		u, v := a.Others()
		u0, u1 := cellRange(geom.Component(bb.Min, u), geom.Component(bb.Max, u), g.Size[u])
		v0, v1 := cellRange(geom.Component(bb.Min, v), geom.Component(bb.Max, v), g.Size[v])
		dir := geom.Unit(a)

		for i := u0; i < u1; i++ {
			for j := v0; j < v1; j++ {
				for k, off := range offsets {
					origin := geom.WithComponent(v3.Vec{}, u, float64(i)+off[0])
					origin = geom.WithComponent(origin, v, float64(j)+off[1])
					depth, ok := geom.IntersectLine(origin, dir, t)
					if !ok {
						continue
					}
					key := scanKey{axis: a, i: i, j: j, sample: k}
					l[key] = append(l[key], crossing{depth: depth, facing: na > 0})
				}
			}
		}
	}
}

// mark walks the crossings of one scan line in depth order. Crossings
// alternate between entering and leaving the solid: an entering crossing
// marks the cell after it, a leaving one the cell before it. Hits within
// Epsilon of each other merge, so a ray through a shared edge counts once;
// a cluster holding both facings (two surfaces touching, or a silhouette
// edge) enters and leaves at once and marks the cells on both sides.
//
// It returns the number of cells set inside the grid.
func (k scanKey) mark(g *grid.Grid, hits []crossing) int {
	slices.SortFunc(hits, func(a, b crossing) int {
		return cmp.Compare(a.depth, b.depth)
	})
	set := func(depth float64) int {
		var cell [3]int
		u, v := k.axis.Others()
		cell[u] = k.i
		cell[v] = k.j
		cell[k.axis] = int(math.Floor(depth))
		if g.Set(cell[0], cell[1], cell[2], grid.Solid) {
			return 1
		}
		return 0
	}

	marked, crossed := 0, 0
	for start := 0; start < len(hits); {
		d := hits[start].depth
		var facing [2]bool
		end := start
		for ; end < len(hits) && hits[end].depth-d <= Epsilon; end++ {
			if hits[end].facing {
				facing[1] = true
			} else {
				facing[0] = true
			}
		}
		start = end

		switch {
		case facing[0] && facing[1]:
			marked += set(d - Epsilon)
			marked += set(d + Epsilon)
			crossed += 2
		case crossed%2 == 0:
			marked += set(d + Epsilon)
			crossed++
		default:
			marked += set(d - Epsilon)
			crossed++
		}
	}
	return marked
}

// cellRange returns the half-open range of cell indexes whose unit interval
// overlaps [lo, hi], clamped to [0, size).
func cellRange(lo, hi float64, size int) (int, int) {
	i0 := int(math.Floor(lo))
	i1 := int(math.Ceil(hi))
	if i1 == i0 {
		// Zero-width extent on an integer boundary: no cell centre or
		// inset corner can lie on it.
		return 0, 0
	}
	if i0 < 0 {
		i0 = 0
	}
	if i1 > size {
		i1 = size
	}
	return i0, i1
}
