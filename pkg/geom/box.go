package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BoxTriangles tessellates the axis-aligned box [min, max] into 12 triangles
// wound so that every normal points out of the box.
func BoxTriangles(min, max v3.Vec) []Triangle {
	tris := make([]Triangle, 0, 12)
	for _, a := range Axes {
		u, v := a.Others()
		for _, side := range [2]float64{-1, 1} {
			w := Component(min, a)
			if side > 0 {
				w = Component(max, a)
			}
			corner := func(cu, cv v3.Vec) v3.Vec {
				p := WithComponent(v3.Vec{}, a, w)
				p = WithComponent(p, u, Component(cu, u))
				return WithComponent(p, v, Component(cv, v))
			}
			p0 := corner(min, min)
			p1 := corner(max, min)
			p2 := corner(max, max)
			p3 := corner(min, max)
			for _, t := range [2]Triangle{{p0, p1, p2}, {p0, p2, p3}} {
				if Component(t.Normal(), a)*side < 0 {
					t[1], t[2] = t[2], t[1]
				}
				tris = append(tris, t)
			}
		}
	}
	return tris
}
