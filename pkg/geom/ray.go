package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// barycentricSlack widens the inside test slightly so that rays passing
// exactly through a shared edge hit at least one of the two triangles.
const barycentricSlack = 1e-9

// IntersectLine intersects the line origin + t·dir with the triangle using
// the Möller–Trumbore test. The line is unbounded in both directions; callers
// decide which t values they accept. Lines parallel to the triangle plane
// never intersect.
func IntersectLine(origin, dir v3.Vec, tri Triangle) (t float64, ok bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-12 {
		return 0, false
	}
	inv := 1 / det

	s := origin.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < -barycentricSlack || u > 1+barycentricSlack {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < -barycentricSlack || u+v > 1+barycentricSlack {
		return 0, false
	}
	return e2.Dot(q) * inv, true
}

// IntersectRay is IntersectLine restricted to t >= 0.
func IntersectRay(origin, dir v3.Vec, tri Triangle) (t float64, ok bool) {
	t, ok = IntersectLine(origin, dir, tri)
	if !ok || t < 0 {
		return 0, false
	}
	return t, true
}
