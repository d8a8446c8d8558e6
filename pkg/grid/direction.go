package grid

import (
	"fmt"

	"github.com/chazu/voxblock/pkg/geom"
)

// Direction is one of the six axis-aligned unit steps between cells.
type Direction uint8

const (
	PosX Direction = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Directions lists all six directions in declaration order.
var Directions = [6]Direction{PosX, NegX, PosY, NegY, PosZ, NegZ}

var directionNames = [6]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText encodes the direction as "+x", "-y" and so on.
func (d Direction) MarshalText() ([]byte, error) {
	if int(d) >= len(directionNames) {
		return nil, fmt.Errorf("grid: invalid direction %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if name == string(b) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("grid: unknown direction %q", b)
}

// DirectionOf returns the direction along axis a with the sign of s.
// s must be non-zero.
func DirectionOf(a geom.Axis, s int) Direction {
	d := Direction(2 * int(a))
	if s < 0 {
		d++
	}
	return d
}

// Axis returns the axis the direction runs along.
func (d Direction) Axis() geom.Axis {
	return geom.Axis(d / 2)
}

// Sign returns +1 or -1.
func (d Direction) Sign() int {
	if d%2 == 0 {
		return 1
	}
	return -1
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Offset returns the cell step for the direction.
func (d Direction) Offset() (dx, dy, dz int) {
	var o [3]int
	o[d.Axis()] = d.Sign()
	return o[0], o[1], o[2]
}

// Vector returns the step as a vector of ints.
func (d Direction) Vector() [3]int {
	dx, dy, dz := d.Offset()
	return [3]int{dx, dy, dz}
}

// Cross returns the direction of d × e. It panics if d and e are parallel.
func (d Direction) Cross(e Direction) Direction {
	if d.Axis() == e.Axis() {
		panic(fmt.Sprintf("grid: cross product of parallel directions %s and %s", d, e))
	}
	u, v := d.Axis().Others()
	sign := d.Sign() * e.Sign()
	if e.Axis() == u {
		return DirectionOf(v, sign)
	}
	return DirectionOf(u, -sign)
}
