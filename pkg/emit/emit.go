// Package emit turns a finished grid into block placement commands.
package emit

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/voxblock/pkg/grid"
	"github.com/chazu/voxblock/pkg/orient"
)

// Identifiers are the caller's block names for each shape family. They are
// opaque to this package.
type Identifiers struct {
	Solid         string `json:"solid"`
	Slope         string `json:"slope"`
	Corner        string `json:"corner"`
	InverseCorner string `json:"inverseCorner"`
}

// For returns the identifier of family f.
func (ids Identifiers) For(f grid.Family) string {
	switch f {
	case grid.FamilySolid:
		return ids.Solid
	case grid.FamilySlope:
		return ids.Slope
	case grid.FamilyCorner:
		return ids.Corner
	case grid.FamilyInverseCorner:
		return ids.InverseCorner
	default:
		panic(fmt.Sprintf("emit: no identifier for family %s", f))
	}
}

// Command places one block.
type Command struct {
	Position    [3]int             `json:"position"`
	Shape       string             `json:"shape"`
	Orientation orient.Orientation `json:"orientation"`
}

// Emit walks g in index order and returns one command per occupied cell.
// Positions are absolute: g.Origin plus the cell index.
//
// Interior cells are skipped unless fill is set, in which case they are
// emitted as cubes and rewritten to Solid in g so that later counts see the
// filled grid.
func Emit(g *grid.Grid, table orient.Table, ids Identifiers, fill bool) []Command {
	var out []Command
	for i := 0; i < g.Volume(); i++ {
		c := g.AtIndex(i)
		if !c.Placeable() {
			continue
		}
		if c == grid.Interior {
			if !fill {
				continue
			}
			c = grid.Solid
			g.SetIndex(i, c)
		}
		x, y, z := g.Coords(i)
		out = append(out, Command{
			Position:    [3]int{g.Origin[0] + x, g.Origin[1] + y, g.Origin[2] + z},
			Shape:       ids.For(c.Family()),
			Orientation: table.Lookup(c),
		})
	}
	return out
}

// WriteCommands writes cmds to w as an indented JSON array.
func WriteCommands(w io.Writer, cmds []Command) error {
	if cmds == nil {
		cmds = []Command{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cmds); err != nil {
		return fmt.Errorf("emit: encode commands: %w", err)
	}
	return nil
}
