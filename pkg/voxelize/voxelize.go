// Package voxelize runs the full mesh-to-blocks conversion: transform,
// rasterize, classify, refine and emit.
package voxelize

import (
	"math"

	"github.com/chazu/voxblock/pkg/classify"
	"github.com/chazu/voxblock/pkg/emit"
	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/grid"
	"github.com/chazu/voxblock/pkg/orient"
	"github.com/chazu/voxblock/pkg/progress"
	"github.com/chazu/voxblock/pkg/raster"
	"github.com/chazu/voxblock/pkg/refine"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrCancelled is returned when the run was stopped through its hooks. It is
// the same value as progress.ErrCancelled.
var ErrCancelled = progress.ErrCancelled

// Options configure one run. The zero value is a Thin run at scale 1 with
// the default tables and no hooks.
type Options struct {
	// Scale multiplies every coordinate after Transform. Zero means 1.
	Scale float64
	// Transform is applied to the mesh first. Nil means identity.
	Transform *sdf.M44

	Mode Mode
	// Fill emits interior cells as cubes.
	Fill bool

	Identifiers emit.Identifiers
	// Table defaults to orient.Default when empty.
	Table orient.Table
	// Rules defaults to refine.DefaultRules when empty.
	Rules *refine.Rules

	Hooks progress.Hooks
}

func (o Options) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

func (o Options) transform() sdf.M44 {
	if o.Transform == nil {
		return sdf.Identity3d()
	}
	return *o.Transform
}

func (o Options) table() orient.Table {
	if o.Table.Len() == 0 {
		return orient.Default()
	}
	return o.Table
}

func (o Options) rules() refine.Rules {
	if o.Rules == nil {
		return refine.DefaultRules()
	}
	return *o.Rules
}

// Result is the output of Convert.
type Result struct {
	Grid     *grid.Grid
	Commands []emit.Command
	// Origin is the absolute position of cell (0, 0, 0).
	Origin [3]int
}

// Counts returns the number of cells of each type in the finished grid.
func (r *Result) Counts() map[grid.CellType]int {
	return r.Grid.Counts()
}

// Voxelize builds the classified grid for tris. Cells are unit cubes in the
// transformed and scaled space; the grid spans the floored and ceiled
// bounding box of the mesh.
//
// An empty mesh or one with zero-volume bounds yields an empty grid and no
// error. When the hooks cancel the run Voxelize returns a nil grid and
// ErrCancelled.
func Voxelize(tris []geom.Triangle, opts Options) (*grid.Grid, error) {
	if err := opts.Mode.Supported(); err != nil {
		return nil, err
	}
	rules := opts.rules()
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	tris = geom.Transform(tris, opts.transform(), opts.scale())
	g, local := allocate(tris)
	if g.Empty() {
		return g, nil
	}

	hooks := opts.Hooks
	if err := raster.Rasterize(g, local, opts.Mode.Sampling(), hooks); err != nil {
		return nil, err
	}
	if err := classify.Classify(g, hooks); err != nil {
		return nil, err
	}
	if opts.Mode.Smoothed() {
		if err := refine.Refine(g, rules, hooks); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Convert runs Voxelize and emits the build commands.
func Convert(tris []geom.Triangle, opts Options) (*Result, error) {
	g, err := Voxelize(tris, opts)
	if err != nil {
		return nil, err
	}
	if opts.Hooks.Stop() {
		return nil, ErrCancelled
	}
	cmds := emit.Emit(g, opts.table(), opts.Identifiers, opts.Fill)
	return &Result{Grid: g, Commands: cmds, Origin: g.Origin}, nil
}

// Extent returns the origin and size of the grid Voxelize would allocate
// for tris, without rasterizing anything.
func Extent(tris []geom.Triangle, opts Options) (origin, size [3]int) {
	return extent(geom.Transform(tris, opts.transform(), opts.scale()))
}

func extent(tris []geom.Triangle) (origin, size [3]int) {
	bb, ok := geom.Bounds(tris)
	if !ok || !finite(bb) {
		return origin, size
	}
	origin = geom.FloorInts(bb.Min)
	hi := geom.CeilInts(bb.Max)
	for i := range size {
		size[i] = hi[i] - origin[i]
	}
	return origin, size
}

// allocate sizes the grid to the bounds of tris and returns the triangles
// moved into grid-local space.
func allocate(tris []geom.Triangle) (*grid.Grid, []geom.Triangle) {
	lo, size := extent(tris)
	g := grid.New(lo, size)
	if g.Empty() {
		return g, nil
	}
	shift := v3.Vec{X: -float64(lo[0]), Y: -float64(lo[1]), Z: -float64(lo[2])}
	return g, geom.Translate(tris, shift)
}

func finite(bb sdf.Box3) bool {
	for _, f := range []float64{bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
