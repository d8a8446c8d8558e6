package refine

import (
	"fmt"

	"github.com/chazu/voxblock/pkg/grid"
)

// Pattern assigns Result to a cell when, for every i, the neighbor one step
// in Neighbors[i] holds Require[i]. Neighbors outside the grid never match.
type Pattern struct {
	Neighbors []grid.Direction
	Require   []grid.CellType
	Result    grid.CellType
}

func (p Pattern) String() string {
	s := ""
	for i, d := range p.Neighbors {
		if i > 0 {
			s += " "
		}
		if i < len(p.Require) {
			s += fmt.Sprintf("%s=%s", d, p.Require[i])
		} else {
			s += fmt.Sprintf("%s=?", d)
		}
	}
	return fmt.Sprintf("[%s] -> %s", s, p.Result)
}

// Matches reports whether p holds at cell (x, y, z).
func (p Pattern) Matches(g *grid.Grid, x, y, z int) bool {
	for i, d := range p.Neighbors {
		c, ok := g.Neighbor(x, y, z, d)
		if !ok || c != p.Require[i] {
			return false
		}
	}
	return true
}

// validate checks that p is well formed.
func (p Pattern) validate() error {
	if len(p.Neighbors) == 0 {
		return fmt.Errorf("pattern %s: no neighbors", p)
	}
	if len(p.Neighbors) != len(p.Require) {
		return fmt.Errorf("pattern -> %s: %d neighbors but %d requirements", p.Result, len(p.Neighbors), len(p.Require))
	}
	if !p.Result.Placeable() || p.Result == grid.Interior {
		return fmt.Errorf("pattern %s: result is not a block shape", p)
	}
	return nil
}

// Match returns the result of the first pattern that holds at (x, y, z).
func Match(patterns []Pattern, g *grid.Grid, x, y, z int) (grid.CellType, bool) {
	for _, p := range patterns {
		if p.Matches(g, x, y, z) {
			return p.Result, true
		}
	}
	return grid.Unclassified, false
}
