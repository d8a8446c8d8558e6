package grid

import (
	"fmt"

	"github.com/chazu/voxblock/pkg/geom"
)

// Family groups cell types by the block shape they are built from.
type Family uint8

const (
	FamilyNone          Family = iota // empty space, never emitted
	FamilySolid                       // full cube
	FamilySlope                       // half cube cut along a face diagonal
	FamilyCorner                      // outward corner
	FamilyInverseCorner               // inward corner
)

// Families lists the emitted families in a fixed order.
var Families = [4]Family{FamilySolid, FamilySlope, FamilyCorner, FamilyInverseCorner}

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilySolid:
		return "solid"
	case FamilySlope:
		return "slope"
	case FamilyCorner:
		return "corner"
	case FamilyInverseCorner:
		return "inverse-corner"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// CellType is the classification of one grid cell. The set of values is
// closed; NumCellTypes bounds it.
type CellType uint8

const (
	Unclassified CellType = iota
	Exterior              // transient: reached by the exterior flood fill
	Interior              // enclosed by the surface shell
	Solid

	// Slopes are named after the two neighbor directions that hold solid
	// cells, which are also the two full faces of the slope block.
	SlopePosXPosY
	SlopePosXNegY
	SlopeNegXPosY
	SlopeNegXNegY
	SlopePosXPosZ
	SlopePosXNegZ
	SlopeNegXPosZ
	SlopeNegXNegZ
	SlopePosYPosZ
	SlopePosYNegZ
	SlopeNegYPosZ
	SlopeNegYNegZ

	// Corners and inverse corners are named after the octant their mass
	// leans into.
	CornerPosXPosYPosZ
	CornerPosXPosYNegZ
	CornerPosXNegYPosZ
	CornerPosXNegYNegZ
	CornerNegXPosYPosZ
	CornerNegXPosYNegZ
	CornerNegXNegYPosZ
	CornerNegXNegYNegZ

	InverseCornerPosXPosYPosZ
	InverseCornerPosXPosYNegZ
	InverseCornerPosXNegYPosZ
	InverseCornerPosXNegYNegZ
	InverseCornerNegXPosYPosZ
	InverseCornerNegXPosYNegZ
	InverseCornerNegXNegYPosZ
	InverseCornerNegXNegYNegZ

	NumCellTypes
)

type cellInfo struct {
	name   string
	family Family
	faces  []Direction
}

var cellInfos = [NumCellTypes]cellInfo{
	Unclassified: {"unclassified", FamilyNone, nil},
	Exterior:     {"exterior", FamilyNone, nil},
	Interior:     {"interior", FamilySolid, nil},
	Solid:        {"solid", FamilySolid, nil},

	SlopePosXPosY: {"slope(+x,+y)", FamilySlope, []Direction{PosX, PosY}},
	SlopePosXNegY: {"slope(+x,-y)", FamilySlope, []Direction{PosX, NegY}},
	SlopeNegXPosY: {"slope(-x,+y)", FamilySlope, []Direction{NegX, PosY}},
	SlopeNegXNegY: {"slope(-x,-y)", FamilySlope, []Direction{NegX, NegY}},
	SlopePosXPosZ: {"slope(+x,+z)", FamilySlope, []Direction{PosX, PosZ}},
	SlopePosXNegZ: {"slope(+x,-z)", FamilySlope, []Direction{PosX, NegZ}},
	SlopeNegXPosZ: {"slope(-x,+z)", FamilySlope, []Direction{NegX, PosZ}},
	SlopeNegXNegZ: {"slope(-x,-z)", FamilySlope, []Direction{NegX, NegZ}},
	SlopePosYPosZ: {"slope(+y,+z)", FamilySlope, []Direction{PosY, PosZ}},
	SlopePosYNegZ: {"slope(+y,-z)", FamilySlope, []Direction{PosY, NegZ}},
	SlopeNegYPosZ: {"slope(-y,+z)", FamilySlope, []Direction{NegY, PosZ}},
	SlopeNegYNegZ: {"slope(-y,-z)", FamilySlope, []Direction{NegY, NegZ}},

	CornerPosXPosYPosZ: {"corner(+x,+y,+z)", FamilyCorner, []Direction{PosX, PosY, PosZ}},
	CornerPosXPosYNegZ: {"corner(+x,+y,-z)", FamilyCorner, []Direction{PosX, PosY, NegZ}},
	CornerPosXNegYPosZ: {"corner(+x,-y,+z)", FamilyCorner, []Direction{PosX, NegY, PosZ}},
	CornerPosXNegYNegZ: {"corner(+x,-y,-z)", FamilyCorner, []Direction{PosX, NegY, NegZ}},
	CornerNegXPosYPosZ: {"corner(-x,+y,+z)", FamilyCorner, []Direction{NegX, PosY, PosZ}},
	CornerNegXPosYNegZ: {"corner(-x,+y,-z)", FamilyCorner, []Direction{NegX, PosY, NegZ}},
	CornerNegXNegYPosZ: {"corner(-x,-y,+z)", FamilyCorner, []Direction{NegX, NegY, PosZ}},
	CornerNegXNegYNegZ: {"corner(-x,-y,-z)", FamilyCorner, []Direction{NegX, NegY, NegZ}},

	InverseCornerPosXPosYPosZ: {"inverse-corner(+x,+y,+z)", FamilyInverseCorner, []Direction{PosX, PosY, PosZ}},
	InverseCornerPosXPosYNegZ: {"inverse-corner(+x,+y,-z)", FamilyInverseCorner, []Direction{PosX, PosY, NegZ}},
	InverseCornerPosXNegYPosZ: {"inverse-corner(+x,-y,+z)", FamilyInverseCorner, []Direction{PosX, NegY, PosZ}},
	InverseCornerPosXNegYNegZ: {"inverse-corner(+x,-y,-z)", FamilyInverseCorner, []Direction{PosX, NegY, NegZ}},
	InverseCornerNegXPosYPosZ: {"inverse-corner(-x,+y,+z)", FamilyInverseCorner, []Direction{NegX, PosY, PosZ}},
	InverseCornerNegXPosYNegZ: {"inverse-corner(-x,+y,-z)", FamilyInverseCorner, []Direction{NegX, PosY, NegZ}},
	InverseCornerNegXNegYPosZ: {"inverse-corner(-x,-y,+z)", FamilyInverseCorner, []Direction{NegX, NegY, PosZ}},
	InverseCornerNegXNegYNegZ: {"inverse-corner(-x,-y,-z)", FamilyInverseCorner, []Direction{NegX, NegY, NegZ}},
}

// Valid reports whether c is inside the closed enumeration.
func (c CellType) Valid() bool {
	return c < NumCellTypes
}

func (c CellType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("CellType(%d)", int(c))
	}
	return cellInfos[c].name
}

// MarshalText lets cell types key JSON objects.
func (c CellType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("grid: invalid cell type %d", int(c))
	}
	return []byte(cellInfos[c].name), nil
}

// Family returns the shape family. Out-of-range values report FamilyNone.
func (c CellType) Family() Family {
	if !c.Valid() {
		return FamilyNone
	}
	return cellInfos[c].family
}

// Placeable reports whether cells of this type become blocks.
func (c CellType) Placeable() bool {
	return c.Family() != FamilyNone
}

// Faces returns the neighbor directions that define the type: the two solid
// neighbors of a slope, or the octant of a corner. Other types return nil.
func (c CellType) Faces() []Direction {
	if !c.Valid() || cellInfos[c].faces == nil {
		return nil
	}
	return append([]Direction(nil), cellInfos[c].faces...)
}

// CellTypes returns every value of the enumeration in order.
func CellTypes() []CellType {
	out := make([]CellType, 0, NumCellTypes)
	for c := CellType(0); c < NumCellTypes; c++ {
		out = append(out, c)
	}
	return out
}

// OfFamily returns every cell type of family f in enumeration order.
func OfFamily(f Family) []CellType {
	var out []CellType
	for c := CellType(0); c < NumCellTypes; c++ {
		if cellInfos[c].family == f {
			out = append(out, c)
		}
	}
	return out
}

// SlopeFor returns the slope whose solid neighbors lie in directions a and
// b, in either order. The second result is false when a and b share an axis.
func SlopeFor(a, b Direction) (CellType, bool) {
	if a.Axis() == b.Axis() {
		return Unclassified, false
	}
	if a.Axis() > b.Axis() {
		a, b = b, a
	}
	var base CellType
	switch {
	case b.Axis() == geom.AxisY:
		base = SlopePosXPosY
	case a.Axis() == geom.AxisX:
		base = SlopePosXPosZ
	default:
		base = SlopePosYPosZ
	}
	return base + CellType(signBit(a.Sign())*2+signBit(b.Sign())), true
}

// OctantType returns the corner or inverse corner leaning into the octant
// with the given signs. f must be FamilyCorner or FamilyInverseCorner.
func OctantType(f Family, sx, sy, sz int) CellType {
	var base CellType
	switch f {
	case FamilyCorner:
		base = CornerPosXPosYPosZ
	case FamilyInverseCorner:
		base = InverseCornerPosXPosYPosZ
	default:
		panic(fmt.Sprintf("grid: %s has no octant variants", f))
	}
	return base + CellType(signBit(sx)*4+signBit(sy)*2+signBit(sz))
}

func signBit(s int) int {
	if s < 0 {
		return 1
	}
	return 0
}
