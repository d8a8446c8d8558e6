package kernel

import (
	"github.com/chazu/voxblock/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is an indexed triangle mesh. Vertices has 3 floats per vertex and
// Indices 3 entries per triangle.
type Mesh struct {
	Vertices []float64 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"` // job entry the mesh came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

func (m *Mesh) vertex(i uint32) v3.Vec {
	return v3.Vec{X: m.Vertices[3*i], Y: m.Vertices[3*i+1], Z: m.Vertices[3*i+2]}
}

// Triangles expands the mesh into a triangle list.
func (m *Mesh) Triangles() []geom.Triangle {
	tris := make([]geom.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, geom.Triangle{
			m.vertex(m.Indices[i]),
			m.vertex(m.Indices[i+1]),
			m.vertex(m.Indices[i+2]),
		})
	}
	return tris
}

// FromTriangles builds an unindexed mesh with three vertices per triangle.
func FromTriangles(name string, tris []geom.Triangle) *Mesh {
	m := &Mesh{
		Vertices: make([]float64, 0, len(tris)*9),
		Indices:  make([]uint32, 0, len(tris)*3),
		Name:     name,
	}
	for _, t := range tris {
		for _, v := range t {
			m.Indices = append(m.Indices, uint32(m.VertexCount()))
			m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
		}
	}
	return m
}
