package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/voxblock/pkg/geom"
)

func TestBox(t *testing.T) {
	k := &SdfxKernel{MeshCells: 20}
	box := k.Box(10, 5, 2.5)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	bb, ok := geom.Bounds(mesh.Triangles())
	if !ok {
		t.Fatal("no triangles")
	}
	const tol = 0.6
	if math.Abs(bb.Min.X) > tol || math.Abs(bb.Max.X-10) > tol {
		t.Errorf("mesh x extent [%f, %f], want ~[0, 10]", bb.Min.X, bb.Max.X)
	}
}

func TestCylinder(t *testing.T) {
	k := &SdfxKernel{MeshCells: 24}
	mesh, err := k.ToMesh(k.Cylinder(8, 2))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestSphere(t *testing.T) {
	k := New()
	min, max := k.Sphere(3).BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]+3) > 0.01 || math.Abs(max[i]-3) > 0.01 {
			t.Errorf("axis %d bounds [%f, %f], want [-3, 3]", i, min[i], max[i])
		}
	}
}

func TestMeshesAreWoundOutward(t *testing.T) {
	k := &SdfxKernel{MeshCells: 16}
	mesh, err := k.ToMesh(k.Sphere(4))
	if err != nil {
		t.Fatal(err)
	}
	// For a sphere at the origin every face normal points away from it.
	inward := 0
	for _, tri := range mesh.Triangles() {
		c := tri[0].Add(tri[1]).Add(tri[2])
		if tri.Normal().Dot(c) < 0 {
			inward++
		}
	}
	if inward != 0 {
		t.Errorf("%d of %d triangles wound inward", inward, mesh.TriangleCount())
	}
}

func TestUnion(t *testing.T) {
	k := &SdfxKernel{MeshCells: 30}
	box1 := k.Box(5, 5, 5)
	box2 := k.Translate(k.Box(5, 5, 5), 3, 0, 0)
	min, max := k.Union(box1, box2).BoundingBox()
	if math.Abs(min[0]) > 0.01 || math.Abs(max[0]-8) > 0.01 {
		t.Errorf("union x extent [%f, %f], want [0, 8]", min[0], max[0])
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Box(10,10,10) has its min corner at the origin, so the moved box
	// spans (100,200,300) to (110,210,310).
	const tol = 0.5
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}
