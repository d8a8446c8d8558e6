// Package refine smooths a classified grid by turning empty cells next to
// the surface into slopes and corners.
//
// Refinement runs three passes in a fixed order. Inverse corners and slopes
// look only at Solid neighbors, so they do not depend on each other. Corners
// look only at the slopes and inverse corners the first two passes placed,
// so they must come last. Every pass rewrites Unclassified cells only.
package refine

import (
	"fmt"

	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/grid"
	"github.com/chazu/voxblock/pkg/progress"
)

// Pass names one refinement pass.
type Pass int

const (
	InverseCornerPass Pass = iota
	SlopePass
	CornerPass
)

// Passes lists the passes in the order Refine runs them.
var Passes = [3]Pass{InverseCornerPass, SlopePass, CornerPass}

func (p Pass) String() string {
	switch p {
	case InverseCornerPass:
		return "inverse-corners"
	case SlopePass:
		return "slopes"
	case CornerPass:
		return "corners"
	default:
		return fmt.Sprintf("Pass(%d)", int(p))
	}
}

// Rules holds the pattern table of each pass. Rules are read-only once
// built and may be shared between runs.
type Rules struct {
	InverseCorners []Pattern
	Slopes         []Pattern
	Corners        []Pattern
}

// Patterns returns the table for pass p.
func (r Rules) Patterns(p Pass) []Pattern {
	switch p {
	case InverseCornerPass:
		return r.InverseCorners
	case SlopePass:
		return r.Slopes
	case CornerPass:
		return r.Corners
	default:
		panic(fmt.Sprintf("refine: unknown pass %d", int(p)))
	}
}

// Validate checks every pattern of every pass.
func (r Rules) Validate() error {
	for _, p := range Passes {
		for i, pat := range r.Patterns(p) {
			if err := pat.validate(); err != nil {
				return fmt.Errorf("refine: %s pass, pattern %d: %w", p, i, err)
			}
		}
	}
	return nil
}

// DefaultRules builds the standard tables: 8 inverse corners, 12 slopes and
// 72 corners.
func DefaultRules() Rules {
	return Rules{
		InverseCorners: inverseCornerPatterns(),
		Slopes:         slopePatterns(),
		Corners:        cornerPatterns(),
	}
}

var signs = [2]int{1, -1}

// octants returns the eight sign triples in cell type order.
func octants() [][3]int {
	out := make([][3]int, 0, 8)
	for _, sx := range signs {
		for _, sy := range signs {
			for _, sz := range signs {
				out = append(out, [3]int{sx, sy, sz})
			}
		}
	}
	return out
}

func octantDir(s [3]int, a geom.Axis) grid.Direction {
	return grid.DirectionOf(a, s[a])
}

// An empty cell walled in on three orthogonal sides.
func inverseCornerPatterns() []Pattern {
	var out []Pattern
	for _, s := range octants() {
		out = append(out, Pattern{
			Neighbors: []grid.Direction{
				octantDir(s, geom.AxisX),
				octantDir(s, geom.AxisY),
				octantDir(s, geom.AxisZ),
			},
			Require: []grid.CellType{grid.Solid, grid.Solid, grid.Solid},
			Result:  grid.OctantType(grid.FamilyInverseCorner, s[0], s[1], s[2]),
		})
	}
	return out
}

// An empty cell with solid on two orthogonal sides. Slopes resting on a
// floor win over ceilings, and both win over walls.
func slopePatterns() []Pattern {
	horizontal := []grid.Direction{grid.PosX, grid.NegX, grid.PosZ, grid.NegZ}
	var pairs [][2]grid.Direction
	for _, y := range []grid.Direction{grid.NegY, grid.PosY} {
		for _, h := range horizontal {
			pairs = append(pairs, [2]grid.Direction{y, h})
		}
	}
	for _, x := range []grid.Direction{grid.PosX, grid.NegX} {
		for _, z := range []grid.Direction{grid.PosZ, grid.NegZ} {
			pairs = append(pairs, [2]grid.Direction{x, z})
		}
	}

	out := make([]Pattern, 0, len(pairs))
	for _, p := range pairs {
		slope, _ := grid.SlopeFor(p[0], p[1])
		out = append(out, Pattern{
			Neighbors: []grid.Direction{p[0], p[1]},
			Require:   []grid.CellType{grid.Solid, grid.Solid},
			Result:    slope,
		})
	}
	return out
}

// An empty cell between two slopes that rest on the same face and lean
// towards each other's side. Either slope may instead be the inverse
// corner of the same octant.
func cornerPatterns() []Pattern {
	var out []Pattern
	for _, rest := range []geom.Axis{geom.AxisY, geom.AxisX, geom.AxisZ} {
		a, b := rest.Others()
		for _, s := range octants() {
			da, db, dr := octantDir(s, a), octantDir(s, b), octantDir(s, rest)
			alongA, _ := grid.SlopeFor(db, dr)
			alongB, _ := grid.SlopeFor(da, dr)
			inv := grid.OctantType(grid.FamilyInverseCorner, s[0], s[1], s[2])
			corner := grid.OctantType(grid.FamilyCorner, s[0], s[1], s[2])
			for _, req := range [3][2]grid.CellType{
				{alongA, alongB},
				{alongA, inv},
				{inv, alongB},
			} {
				out = append(out, Pattern{
					Neighbors: []grid.Direction{da, db},
					Require:   []grid.CellType{req[0], req[1]},
					Result:    corner,
				})
			}
		}
	}
	return out
}

// RunPass applies one pattern table to every Unclassified cell of g and
// returns the number of cells it changed. Results written during the pass
// are visible to later cells of the same pass; the default tables never
// read what they write, so visiting order does not matter for them.
//
// Progress is reported once per cell; cancellation is polled once per grid
// row.
func RunPass(g *grid.Grid, patterns []Pattern, hooks progress.Hooks) (int, error) {
	hooks.Reset(0, g.Volume())
	changed := 0
	for z := 0; z < g.Size[2]; z++ {
		for y := 0; y < g.Size[1]; y++ {
			if hooks.Stop() {
				return changed, progress.ErrCancelled
			}
			for x := 0; x < g.Size[0]; x++ {
				i := g.Index(x, y, z)
				if g.AtIndex(i) == grid.Unclassified {
					if c, ok := Match(patterns, g, x, y, z); ok {
						g.SetIndex(i, c)
						changed++
					}
				}
				hooks.Increment()
			}
		}
	}
	return changed, nil
}

// Refine runs the three passes of r on g in order.
func Refine(g *grid.Grid, r Rules, hooks progress.Hooks) error {
	for _, p := range Passes {
		if _, err := RunPass(g, r.Patterns(p), hooks); err != nil {
			return err
		}
	}
	return nil
}
