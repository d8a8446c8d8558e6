// Package kernel defines the geometry kernel that turns generated solids
// (job primitives) into triangle meshes for voxelization. Backends such as
// sdfx sit behind the Kernel interface.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds, places and meshes solids.
type Kernel interface {
	// Primitives. Boxes have their minimum corner at the origin; cylinders
	// and spheres are centred on it, cylinders along z.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	Sphere(radius float64) Solid

	// Union merges two solids so their shared volume meshes as one shell.
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToMesh tessellates a solid into an outward-wound triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
