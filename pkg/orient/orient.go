// Package orient maps placeable cell types to the block orientation used
// when the cell is emitted.
//
// Orientations follow one convention per family:
//
//   - cubes use (Forward −z, Up +y);
//   - a slope's two full faces are Forward and −Up, where −Up is the face on
//     the y axis, or on the x axis when the slope lies flat in x/z;
//   - a corner or inverse corner leans into the octant
//     Forward − Up − (Forward × Up), with Up taken from the y axis.
package orient

import (
	"fmt"

	"github.com/chazu/voxblock/pkg/grid"
)

// Orientation is a block's forward and up direction. The two are always
// perpendicular.
type Orientation struct {
	Forward grid.Direction `json:"forward"`
	Up      grid.Direction `json:"up"`
}

func (o Orientation) String() string {
	return fmt.Sprintf("(forward %s, up %s)", o.Forward, o.Up)
}

// Right returns Forward × Up.
func (o Orientation) Right() grid.Direction {
	return o.Forward.Cross(o.Up)
}

// Table holds one orientation per placeable cell type. The zero value is
// empty; use Default. Tables are values and are never modified after
// construction, so one table can serve concurrent runs.
type Table struct {
	entries [grid.NumCellTypes]Orientation
	present [grid.NumCellTypes]bool
}

var (
	cube = Orientation{grid.NegZ, grid.PosY}

	defaultEntries = map[grid.CellType]Orientation{
		grid.Solid:    cube,
		grid.Interior: cube,

		grid.SlopePosXPosY: {grid.PosX, grid.NegY},
		grid.SlopePosXNegY: {grid.PosX, grid.PosY},
		grid.SlopeNegXPosY: {grid.NegX, grid.NegY},
		grid.SlopeNegXNegY: {grid.NegX, grid.PosY},
		grid.SlopePosXPosZ: {grid.PosZ, grid.NegX},
		grid.SlopePosXNegZ: {grid.NegZ, grid.NegX},
		grid.SlopeNegXPosZ: {grid.PosZ, grid.PosX},
		grid.SlopeNegXNegZ: {grid.NegZ, grid.PosX},
		grid.SlopePosYPosZ: {grid.PosZ, grid.NegY},
		grid.SlopePosYNegZ: {grid.NegZ, grid.NegY},
		grid.SlopeNegYPosZ: {grid.PosZ, grid.PosY},
		grid.SlopeNegYNegZ: {grid.NegZ, grid.PosY},

		grid.CornerPosXPosYPosZ: {grid.PosX, grid.NegY},
		grid.CornerPosXPosYNegZ: {grid.NegZ, grid.NegY},
		grid.CornerPosXNegYPosZ: {grid.PosZ, grid.PosY},
		grid.CornerPosXNegYNegZ: {grid.PosX, grid.PosY},
		grid.CornerNegXPosYPosZ: {grid.PosZ, grid.NegY},
		grid.CornerNegXPosYNegZ: {grid.NegX, grid.NegY},
		grid.CornerNegXNegYPosZ: {grid.NegX, grid.PosY},
		grid.CornerNegXNegYNegZ: {grid.NegZ, grid.PosY},

		grid.InverseCornerPosXPosYPosZ: {grid.PosX, grid.NegY},
		grid.InverseCornerPosXPosYNegZ: {grid.NegZ, grid.NegY},
		grid.InverseCornerPosXNegYPosZ: {grid.PosZ, grid.PosY},
		grid.InverseCornerPosXNegYNegZ: {grid.PosX, grid.PosY},
		grid.InverseCornerNegXPosYPosZ: {grid.PosZ, grid.NegY},
		grid.InverseCornerNegXPosYNegZ: {grid.NegX, grid.NegY},
		grid.InverseCornerNegXNegYPosZ: {grid.NegX, grid.PosY},
		grid.InverseCornerNegXNegYNegZ: {grid.NegZ, grid.PosY},
	}
)

// Default returns the standard orientation table.
func Default() Table {
	t, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return t
}

// New builds a table from explicit entries. Every placeable cell type must
// be present, no other type may be, and each orientation must have
// perpendicular axes.
func New(entries map[grid.CellType]Orientation) (Table, error) {
	var t Table
	for c, o := range entries {
		if !c.Placeable() {
			return Table{}, fmt.Errorf("orient: %s is not placeable", c)
		}
		if o.Forward.Axis() == o.Up.Axis() {
			return Table{}, fmt.Errorf("orient: %s: forward %s and up %s are parallel", c, o.Forward, o.Up)
		}
		t.entries[c] = o
		t.present[c] = true
	}
	for _, c := range grid.CellTypes() {
		if c.Placeable() && !t.present[c] {
			return Table{}, fmt.Errorf("orient: no entry for %s", c)
		}
	}
	return t, nil
}

// Lookup returns the orientation for c. Only placeable types have entries;
// Interior shares the cube's. Unclassified, Exterior and values outside the
// enumeration panic, since asking for them is a programming error.
func (t Table) Lookup(c grid.CellType) Orientation {
	if !c.Valid() || !t.present[c] {
		panic(fmt.Sprintf("orient: no orientation for %s", c))
	}
	return t.entries[c]
}

// Len returns the number of entries.
func (t Table) Len() int {
	n := 0
	for _, ok := range t.present {
		if ok {
			n++
		}
	}
	return n
}
