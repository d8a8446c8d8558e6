// Package geom holds the 3D math the voxelizer needs on top of sdfx vectors:
// triangles, bounds, affine transforms and a ray–triangle intersection test.
package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Axis indexes a vector component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the three axes in component order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Others returns the two remaining axes in cyclic order, so that
// (a, u, v) is always a right-handed frame.
func (a Axis) Others() (u, v Axis) {
	return (a + 1) % 3, (a + 2) % 3
}

// Component returns the a-th component of v.
func Component(v v3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with its a-th component replaced by f.
func WithComponent(v v3.Vec, a Axis, f float64) v3.Vec {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// Unit returns the unit vector along a.
func Unit(a Axis) v3.Vec {
	return WithComponent(v3.Vec{}, a, 1)
}

// FloorInts floors each component of v.
func FloorInts(v v3.Vec) [3]int {
	return [3]int{int(math.Floor(v.X)), int(math.Floor(v.Y)), int(math.Floor(v.Z))}
}

// CeilInts ceils each component of v.
func CeilInts(v v3.Vec) [3]int {
	return [3]int{int(math.Ceil(v.X)), int(math.Ceil(v.Y)), int(math.Ceil(v.Z))}
}

// Triangle is three points in space. Winding is counter-clockwise when seen
// from the side the face normal points to.
type Triangle [3]v3.Vec

// Normal returns the unnormalized face normal (b-a)×(c-a).
func (t Triangle) Normal() v3.Vec {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
}

// Degenerate reports whether the triangle has no area.
func (t Triangle) Degenerate() bool {
	n := t.Normal()
	return n.Dot(n) == 0
}

// Bounds returns the axis-aligned bounding box of the triangle.
func (t Triangle) Bounds() sdf.Box3 {
	return sdf.Box3{
		Min: t[0].Min(t[1]).Min(t[2]),
		Max: t[0].Max(t[1]).Max(t[2]),
	}
}

// Map applies f to each vertex.
func (t Triangle) Map(f func(v3.Vec) v3.Vec) Triangle {
	return Triangle{f(t[0]), f(t[1]), f(t[2])}
}

// Bounds returns the bounding box of all triangles. The second result is
// false when the list is empty.
func Bounds(tris []Triangle) (sdf.Box3, bool) {
	if len(tris) == 0 {
		return sdf.Box3{}, false
	}
	bb := tris[0].Bounds()
	for _, t := range tris[1:] {
		tb := t.Bounds()
		bb.Min = bb.Min.Min(tb.Min)
		bb.Max = bb.Max.Max(tb.Max)
	}
	return bb, true
}

// Transform returns a copy of tris with m applied and then every coordinate
// multiplied by scale. The input is not modified.
func Transform(tris []Triangle, m sdf.M44, scale float64) []Triangle {
	out := make([]Triangle, len(tris))
	for i, t := range tris {
		out[i] = t.Map(func(v v3.Vec) v3.Vec {
			return m.MulPosition(v).MulScalar(scale)
		})
	}
	return out
}

// Translate returns a copy of tris moved by d.
func Translate(tris []Triangle, d v3.Vec) []Triangle {
	out := make([]Triangle, len(tris))
	for i, t := range tris {
		out[i] = t.Map(func(v v3.Vec) v3.Vec { return v.Add(d) })
	}
	return out
}
