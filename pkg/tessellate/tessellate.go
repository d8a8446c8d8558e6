// Package tessellate turns the generated primitives of a job into triangle
// meshes using a geometry kernel.
package tessellate

import (
	"fmt"

	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/job"
	"github.com/chazu/voxblock/pkg/kernel"
)

// Solid builds the kernel solid for one primitive. Rotation is applied
// before translation.
func Solid(k kernel.Kernel, p job.Primitive) (kernel.Solid, error) {
	var solid kernel.Solid
	switch p.Kind {
	case job.PrimBox:
		solid = k.Box(p.Size.X, p.Size.Y, p.Size.Z)
	case job.PrimCylinder:
		solid = k.Cylinder(p.Height, p.Radius)
	case job.PrimSphere:
		solid = k.Sphere(p.Radius)
	default:
		return nil, fmt.Errorf("unsupported primitive kind %q", p.Kind)
	}

	if rot := p.Rotation; !rot.IsZero() {
		solid = k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}
	if t := p.Translation; !t.IsZero() {
		solid = k.Translate(solid, t.X, t.Y, t.Z)
	}
	return solid, nil
}

// Tessellate produces one mesh per primitive. Meshes are named after the
// primitive, or after its index when it has no name.
func Tessellate(k kernel.Kernel, prims []job.Primitive) ([]*kernel.Mesh, error) {
	meshes := make([]*kernel.Mesh, 0, len(prims))
	for i, p := range prims {
		name := label(p, i)
		solid, err := Solid(k, p)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %s: %w", name, err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", name, err)
		}
		mesh.Name = name
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// Merge unions every primitive into one solid and meshes it once, so that
// overlapping primitives share a single outer shell. It returns nil for no
// primitives.
func Merge(k kernel.Kernel, prims []job.Primitive) (*kernel.Mesh, error) {
	var union kernel.Solid
	for i, p := range prims {
		solid, err := Solid(k, p)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %s: %w", label(p, i), err)
		}
		if union == nil {
			union = solid
		} else {
			union = k.Union(union, solid)
		}
	}
	if union == nil {
		return nil, nil
	}
	mesh, err := k.ToMesh(union)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for union of %d primitives: %w", len(prims), err)
	}
	mesh.Name = "primitives"
	return mesh, nil
}

// Triangles concatenates the triangles of every mesh.
func Triangles(meshes ...*kernel.Mesh) []geom.Triangle {
	var n int
	for _, m := range meshes {
		if m != nil {
			n += m.TriangleCount()
		}
	}
	tris := make([]geom.Triangle, 0, n)
	for _, m := range meshes {
		if m != nil {
			tris = append(tris, m.Triangles()...)
		}
	}
	return tris
}

func label(p job.Primitive, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("%s#%d", p.Kind, i)
}
