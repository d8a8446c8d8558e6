package engine

import (
	"strings"
	"testing"

	"github.com/chazu/voxblock/pkg/emit"
	"github.com/chazu/voxblock/pkg/job"
	"github.com/chazu/voxblock/pkg/voxelize"
	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(sphere :radius 3)`,
			expect: `(sphere "__kw_radius" 3)`,
		},
		{
			name:   "multiple keywords",
			input:  `(cylinder :height 8 :radius 2)`,
			expect: `(cylinder "__kw_height" 8 "__kw_radius" 2)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "escaped quote in string",
			input:  `"a \" :b" :c`,
			expect: `"a \" :b" "__kw_c"`,
		},
		{
			name:   "backtick string preserved",
			input:  "`raw :kw max-cells`",
			expect: "`raw :kw max-cells`",
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(max-cells 100)`,
			expect: `(max_cells 100)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(vec3 -1 0 -2)`,
			expect: `(vec3 -1 0 -2)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  "; simple comment\n(fill true)",
			expect: "// simple comment\n(fill true)",
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `(mode :thick-smoothed-up)`,
			expect: `(mode "__kw_thick-smoothed-up")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Builtin tests
// ---------------------------------------------------------------------------

func evalJob(t *testing.T, src string) *job.Job {
	t.Helper()
	j, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return j
}

func evalFails(t *testing.T, src, wantMsg string) {
	t.Helper()
	j, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if j != nil {
		t.Fatal("expected nil job")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected an eval error")
	}
	if !strings.Contains(evalErrs[0].Message, wantMsg) {
		t.Errorf("message = %q, want containing %q", evalErrs[0].Message, wantMsg)
	}
}

func TestFullJobScript(t *testing.T) {
	src := `
; A small ship hull with a turret.
(mesh "hull.stl" "deck.off")
(scale 2.5)
(mode :thick-smoothed-up)
(fill true)
(blocks :solid "Heavy" :slope "HeavySlope" :corner "HeavyCorner" :inverse-corner "HeavyCornerInv")
(output "ship.json")
(preview "ship-cells.stl")
(max-cells 1000000)

(def turret (cylinder :height 4 :radius 1.5))
(place turret :at (vec3 0 0 10) :rotate (vec3 90 0 0) :name "turret")
(place (box 4 3 3))
(place (sphere 2) :at (vec3 -1 2.5 0))
`
	got := evalJob(t, src)

	want := &job.Job{
		Meshes: []string{"hull.stl", "deck.off"},
		Primitives: []job.Primitive{
			{
				Name:        "turret",
				Kind:        job.PrimCylinder,
				Height:      4,
				Radius:      1.5,
				Translation: job.Vec3{Z: 10},
				Rotation:    job.Vec3{X: 90},
			},
			{Kind: job.PrimBox, Size: job.Vec3{X: 4, Y: 3, Z: 3}},
			{Kind: job.PrimSphere, Radius: 2, Translation: job.Vec3{X: -1, Y: 2.5}},
		},
		Scale: 2.5,
		Mode:  voxelize.ThickSmoothedUp,
		Fill:  true,
		Blocks: emit.Identifiers{
			Solid:         "Heavy",
			Slope:         "HeavySlope",
			Corner:        "HeavyCorner",
			InverseCorner: "HeavyCornerInv",
		},
		Output:   "ship.json",
		Preview:  "ship-cells.stl",
		MaxCells: 1000000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate().Err(); err != nil {
		t.Errorf("scripted job does not validate: %v", err)
	}
}

func TestBoxSizeKeyword(t *testing.T) {
	j := evalJob(t, `(place (box :size (vec3 1 2 3)))`)
	want := []job.Primitive{{Kind: job.PrimBox, Size: job.Vec3{X: 1, Y: 2, Z: 3}}}
	if diff := cmp.Diff(want, j.Primitives); diff != "" {
		t.Errorf("primitives mismatch (-want +got):\n%s", diff)
	}
}

func TestUnplacedSolidIsIgnored(t *testing.T) {
	j := evalJob(t, `(def b (box 1 1 1))`)
	if len(j.Primitives) != 0 {
		t.Errorf("primitives = %v, want none", j.Primitives)
	}
}

func TestPartialBlocksKeepDefaults(t *testing.T) {
	j := evalJob(t, `(blocks :slope "S")`)
	want := job.DefaultBlocks
	want.Slope = "S"
	if diff := cmp.Diff(want, j.Blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestVec3(t *testing.T) {
	j := evalJob(t, `(place (sphere :radius 1) :at (vec3 1.5 -2 3))`)
	if got := j.Primitives[0].Translation; got != (job.Vec3{X: 1.5, Y: -2, Z: 3}) {
		t.Errorf("translation = %+v", got)
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"vec3 arity", `(vec3 1 2)`, "vec3 requires exactly 3 arguments"},
		{"vec3 type", `(vec3 1 "a" 2)`, "expected number"},
		{"box arity", `(box 1 2)`, "box takes 3 dimensions"},
		{"place arity", `(place)`, "place requires exactly one solid"},
		{"place type", `(place (vec3 1 2 3))`, "expected box, cylinder or sphere"},
		{"place at type", `(place (box 1 1 1) :at 3)`, "expected vec3"},
		{"unknown mode", `(mode :sideways)`, "unknown mode"},
		{"fill type", `(fill 1)`, "expected true or false"},
		{"unknown family", `(blocks :wedge "W")`, "unknown family"},
		{"mesh without path", `(mesh)`, "at least one path"},
		{"output type", `(output 3)`, "expected string"},
		{"scale arity", `(scale)`, "scale requires exactly 1 argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evalFails(t, tt.src, tt.want)
		})
	}
}

func TestScriptedModeIsParsedNotChecked(t *testing.T) {
	// The engine records the mode; rejecting it is validation's job.
	j := evalJob(t, `(mode :thick-smoothed-down) (place (box 1 1 1))`)
	if j.Mode != voxelize.ThickSmoothedDown {
		t.Fatalf("mode = %s", j.Mode)
	}
	if err := j.Validate().Err(); err == nil {
		t.Error("Validate() accepted thick-smoothed-down")
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	j := evalJob(t, `
(def side 3)
(place (box (* side 2) side (+ side 1)))
`)
	if got := j.Primitives[0].Size; got != (job.Vec3{X: 6, Y: 3, Z: 4}) {
		t.Errorf("size = %+v", got)
	}
}
