package emit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chazu/voxblock/pkg/grid"
	"github.com/chazu/voxblock/pkg/orient"
	"github.com/google/go-cmp/cmp"
)

var ids = Identifiers{Solid: "cube", Slope: "slope", Corner: "corner", InverseCorner: "inv"}

func sample() *grid.Grid {
	g := grid.New([3]int{10, -2, 5}, [3]int{3, 1, 2})
	g.Set(0, 0, 0, grid.Solid)
	g.Set(1, 0, 0, grid.Interior)
	g.Set(2, 0, 0, grid.SlopePosXNegY)
	g.Set(0, 0, 1, grid.CornerPosXNegYPosZ)
	g.Set(1, 0, 1, grid.InverseCornerNegXNegYNegZ)
	return g
}

func TestEmit(t *testing.T) {
	table := orient.Default()
	g := sample()
	got := Emit(g, table, ids, false)
	want := []Command{
		{Position: [3]int{10, -2, 5}, Shape: "cube", Orientation: table.Lookup(grid.Solid)},
		{Position: [3]int{12, -2, 5}, Shape: "slope", Orientation: table.Lookup(grid.SlopePosXNegY)},
		{Position: [3]int{10, -2, 6}, Shape: "corner", Orientation: table.Lookup(grid.CornerPosXNegYPosZ)},
		{Position: [3]int{11, -2, 6}, Shape: "inv", Orientation: table.Lookup(grid.InverseCornerNegXNegYNegZ)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit() mismatch (-want +got):\n%s", diff)
	}
	if g.At(1, 0, 0) != grid.Interior {
		t.Error("Emit without fill rewrote an interior cell")
	}
}

func TestEmitFillPromotesInterior(t *testing.T) {
	g := sample()
	got := Emit(g, orient.Default(), ids, true)
	if len(got) != 5 {
		t.Fatalf("Emit() = %d commands, want 5", len(got))
	}
	if got[1].Position != [3]int{11, -2, 5} || got[1].Shape != "cube" {
		t.Errorf("filled command = %+v", got[1])
	}
	if g.Count(grid.Interior) != 0 || g.Count(grid.Solid) != 2 {
		t.Errorf("after fill: interior %d solid %d, want 0 2", g.Count(grid.Interior), g.Count(grid.Solid))
	}
}

func TestEmitEmptyGrid(t *testing.T) {
	g := grid.New([3]int{}, [3]int{})
	if got := Emit(g, orient.Default(), ids, true); len(got) != 0 {
		t.Errorf("Emit() = %v, want nothing", got)
	}
}

func TestWriteCommands(t *testing.T) {
	table := orient.Default()
	cmds := Emit(sample(), table, ids, false)

	var buf bytes.Buffer
	if err := WriteCommands(&buf, cmds); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"forward": "+x"`) {
		t.Errorf("directions not written as text:\n%s", buf.String())
	}
	var back []Command
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cmds, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCommandsEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCommands(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("WriteCommands(nil) = %q, want []", got)
	}
}
