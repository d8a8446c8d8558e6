package tessellate_test

import (
	"math"
	"testing"

	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/job"
	"github.com/chazu/voxblock/pkg/kernel"
	"github.com/chazu/voxblock/pkg/kernel/sdfx"
	"github.com/chazu/voxblock/pkg/tessellate"
	"github.com/google/go-cmp/cmp"
)

// newKernel returns a coarse sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return &sdfx.SdfxKernel{MeshCells: 40}
}

func abs(x float64) float64 { return math.Abs(x) }

// recordingKernel logs the kernel calls made for each solid.
type recordingKernel struct {
	calls []string
}

type recordedSolid struct{ desc string }

func (s *recordedSolid) BoundingBox() (min, max [3]float64) { return }

func (k *recordingKernel) record(desc string) kernel.Solid {
	k.calls = append(k.calls, desc)
	return &recordedSolid{desc: desc}
}

func (k *recordingKernel) Box(x, y, z float64) kernel.Solid { return k.record("box") }
func (k *recordingKernel) Cylinder(h, r float64) kernel.Solid {
	return k.record("cylinder")
}
func (k *recordingKernel) Sphere(r float64) kernel.Solid { return k.record("sphere") }
func (k *recordingKernel) Union(a, b kernel.Solid) kernel.Solid {
	return k.record("union")
}
func (k *recordingKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return k.record("translate")
}
func (k *recordingKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return k.record("rotate")
}
func (k *recordingKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	k.calls = append(k.calls, "mesh")
	return &kernel.Mesh{}, nil
}

func TestRotateBeforeTranslate(t *testing.T) {
	k := &recordingKernel{}
	prims := []job.Primitive{
		{Kind: job.PrimBox, Size: job.Vec3{X: 1, Y: 1, Z: 1}, Rotation: job.Vec3{Z: 90}, Translation: job.Vec3{X: 5}},
		{Kind: job.PrimSphere, Radius: 1},
	}
	if _, err := tessellate.Tessellate(k, prims); err != nil {
		t.Fatal(err)
	}
	want := []string{"box", "rotate", "translate", "mesh", "sphere", "mesh"}
	if diff := cmp.Diff(want, k.calls); diff != "" {
		t.Errorf("kernel calls mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeUnionsEveryPrimitive(t *testing.T) {
	k := &recordingKernel{}
	prims := []job.Primitive{
		{Kind: job.PrimBox, Size: job.Vec3{X: 1, Y: 1, Z: 1}},
		{Kind: job.PrimCylinder, Height: 2, Radius: 1},
		{Kind: job.PrimSphere, Radius: 1, Translation: job.Vec3{Y: 3}},
	}
	m, err := tessellate.Merge(k, prims)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "primitives" {
		t.Errorf("Name = %q", m.Name)
	}
	want := []string{"box", "cylinder", "union", "sphere", "translate", "union", "mesh"}
	if diff := cmp.Diff(want, k.calls); diff != "" {
		t.Errorf("kernel calls mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeNothing(t *testing.T) {
	m, err := tessellate.Merge(&recordingKernel{}, nil)
	if err != nil || m != nil {
		t.Errorf("Merge(nil) = %v, %v; want nil, nil", m, err)
	}
}

func TestUnknownKind(t *testing.T) {
	prims := []job.Primitive{{Kind: "torus", Name: "ring"}}
	if _, err := tessellate.Tessellate(&recordingKernel{}, prims); err == nil {
		t.Error("Tessellate accepted an unknown kind")
	}
	if _, err := tessellate.Merge(&recordingKernel{}, prims); err == nil {
		t.Error("Merge accepted an unknown kind")
	}
}

func TestMeshNames(t *testing.T) {
	prims := []job.Primitive{
		{Kind: job.PrimBox, Name: "hull", Size: job.Vec3{X: 1, Y: 1, Z: 1}},
		{Kind: job.PrimSphere, Radius: 1},
	}
	meshes, err := tessellate.Tessellate(&recordingKernel{}, prims)
	if err != nil {
		t.Fatal(err)
	}
	if meshes[0].Name != "hull" || meshes[1].Name != "sphere#1" {
		t.Errorf("names = %q, %q", meshes[0].Name, meshes[1].Name)
	}
}

func TestPlacedBox(t *testing.T) {
	prims := []job.Primitive{{
		Name:        "shelf",
		Kind:        job.PrimBox,
		Size:        job.Vec3{X: 10, Y: 5, Z: 2},
		Translation: job.Vec3{X: 20, Y: 10, Z: 5},
	}}
	meshes, err := tessellate.Tessellate(newKernel(), prims)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 || meshes[0].IsEmpty() {
		t.Fatalf("expected one non-empty mesh, got %d", len(meshes))
	}

	// The box spans (20,10,5)-(30,15,7).
	bb, ok := geom.Bounds(tessellate.Triangles(meshes...))
	if !ok {
		t.Fatal("no bounds")
	}
	const tol = 0.5
	for _, c := range []struct {
		got, want float64
	}{
		{bb.Min.X, 20}, {bb.Min.Y, 10}, {bb.Min.Z, 5},
		{bb.Max.X, 30}, {bb.Max.Y, 15}, {bb.Max.Z, 7},
	} {
		if abs(c.got-c.want) > tol {
			t.Errorf("bound = %.2f, want near %.0f", c.got, c.want)
		}
	}
}

func TestTrianglesSkipsNil(t *testing.T) {
	tri := geom.Triangle{{X: 0}, {X: 1}, {Y: 1}}
	m := kernel.FromTriangles("a", []geom.Triangle{tri, tri})
	if got := len(tessellate.Triangles(m, nil, m)); got != 4 {
		t.Errorf("Triangles() = %d, want 4", got)
	}
}
