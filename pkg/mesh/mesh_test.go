package mesh

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/grid"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tetrahedronOFF = `OFF
4 4 0
0 0 0
2 0 0
0 2 0
0 0 2
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`

func TestReadOFF(t *testing.T) {
	tris, err := Read(strings.NewReader(tetrahedronOFF), OFF)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(tris) != 4 {
		t.Fatalf("Read() = %d triangles, want 4", len(tris))
	}
	bb, _ := geom.Bounds(tris)
	if bb.Max != (v3.Vec{X: 2, Y: 2, Z: 2}) || bb.Min != (v3.Vec{}) {
		t.Errorf("bounds = %v", bb)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"ship.stl", STL, false},
		{"SHIP.STL", STL, false},
		{"models/chair.off", OFF, false},
		{"scene.obj", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveAndLoadSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.stl")
	box := geom.BoxTriangles(v3.Vec{X: -1}, v3.Vec{X: 2, Y: 1, Z: 4})
	if err := SaveSTL(path, box); err != nil {
		t.Fatalf("SaveSTL() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(box) {
		t.Fatalf("Load() = %d triangles, want %d", len(got), len(box))
	}
	bb, _ := geom.Bounds(got)
	if bb.Min != (v3.Vec{X: -1}) || bb.Max != (v3.Vec{X: 2, Y: 1, Z: 4}) {
		t.Errorf("bounds after round trip = %v", bb)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.off"))
	if err == nil || !strings.Contains(err.Error(), "load mesh") {
		t.Errorf("Load() error = %v, want wrapped load error", err)
	}
}

func TestPreviewTriangles(t *testing.T) {
	g := grid.New([3]int{5, 0, -1}, [3]int{2, 1, 1})
	g.Set(0, 0, 0, grid.SlopePosXNegY)
	g.Set(1, 0, 0, grid.Interior)

	if got := len(PreviewTriangles(g, false)); got != 12 {
		t.Errorf("without fill: %d triangles, want 12", got)
	}
	tris := PreviewTriangles(g, true)
	if len(tris) != 24 {
		t.Fatalf("with fill: %d triangles, want 24", len(tris))
	}
	bb, _ := geom.Bounds(tris)
	if bb.Min != (v3.Vec{X: 5, Y: 0, Z: -1}) || bb.Max != (v3.Vec{X: 7, Y: 1, Z: 0}) {
		t.Errorf("preview bounds = %v", bb)
	}
}
