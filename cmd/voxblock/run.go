package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/chazu/voxblock/pkg/emit"
	"github.com/chazu/voxblock/pkg/engine"
	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/grid"
	"github.com/chazu/voxblock/pkg/job"
	"github.com/chazu/voxblock/pkg/kernel/sdfx"
	"github.com/chazu/voxblock/pkg/mesh"
	"github.com/chazu/voxblock/pkg/progress"
	"github.com/chazu/voxblock/pkg/tessellate"
	"github.com/chazu/voxblock/pkg/voxelize"
	"github.com/pkg/errors"
)

// config holds the parsed command line.
type config struct {
	ConfigPath string
	ScriptPath string
	Meshes     []string

	Mode      voxelize.Mode
	Scale     float64
	Fill      bool
	Output    string
	Preview   string
	Timeout   time.Duration
	MeshCells int
	Separate  bool
	Quiet     bool

	// set names the flags given explicitly; only those override the job.
	set []string
}

func (c *config) isSet(name string) bool {
	return slices.Contains(c.set, name)
}

// loadJob builds the job from a config file, a script or the defaults, then
// layers explicit flags and positional meshes over it.
func loadJob(cfg config) (*job.Job, error) {
	var j *job.Job
	switch {
	case cfg.ConfigPath != "":
		loaded, err := job.Load(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		j = loaded
	case cfg.ScriptPath != "":
		scripted, err := evalScript(cfg.ScriptPath, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		j = scripted
	default:
		j = job.Default()
	}

	j.Meshes = append(j.Meshes, cfg.Meshes...)
	if cfg.isSet("mode") {
		j.Mode = cfg.Mode
	}
	if cfg.isSet("scale") {
		j.Scale = cfg.Scale
	}
	if cfg.isSet("fill") {
		j.Fill = cfg.Fill
	}
	if cfg.isSet("out") {
		j.Output = cfg.Output
	}
	if cfg.isSet("preview") {
		j.Preview = cfg.Preview
	}
	return j, nil
}

func evalScript(path string, timeout time.Duration) (*job.Job, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	eng := engine.NewEngine()
	eng.Timeout = timeout
	j, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, "evaluate %s", path)
	}
	if len(evalErrs) > 0 {
		return nil, errors.Errorf("%s: %s", path, evalErrs[0].Error())
	}
	j.ResolvePaths(filepath.Dir(path))
	return j, nil
}

// geometry loads every mesh of the job and meshes its primitives. Primitives
// are unioned into one solid unless cfg.Separate is set, in which case each
// gets its own marching cubes box and full resolution.
func geometry(cfg config, j *job.Job) ([]geom.Triangle, error) {
	var tris []geom.Triangle
	for _, path := range j.Meshes {
		m, err := mesh.Load(path)
		if err != nil {
			return nil, err
		}
		cfg.logf("loaded %s: %d triangles", path, len(m))
		tris = append(tris, m...)
	}
	if len(j.Primitives) == 0 {
		return tris, nil
	}
	k := sdfx.New()
	k.MeshCells = cfg.MeshCells
	if cfg.Separate {
		meshes, err := tessellate.Tessellate(k, j.Primitives)
		if err != nil {
			return nil, err
		}
		for _, m := range meshes {
			cfg.logf("meshed %s: %d triangles", m.Name, m.TriangleCount())
		}
		return append(tris, tessellate.Triangles(meshes...)...), nil
	}
	merged, err := tessellate.Merge(k, j.Primitives)
	if err != nil {
		return nil, err
	}
	cfg.logf("meshed %d primitives: %d triangles", len(j.Primitives), merged.TriangleCount())
	tris = append(tris, tessellate.Triangles(merged)...)
	return tris, nil
}

// run executes one conversion and writes its outputs.
func run(ctx context.Context, cfg config, stdout io.Writer) error {
	j, err := loadJob(cfg)
	if err != nil {
		return err
	}
	res := j.Validate()
	for _, w := range res.Warnings {
		cfg.logf("warning: %s", w.Error())
	}
	if err := res.Err(); err != nil {
		return errors.Wrap(err, "invalid job")
	}

	tris, err := geometry(cfg, j)
	if err != nil {
		return err
	}

	opts := j.Options()
	_, size := voxelize.Extent(tris, opts)
	for _, w := range j.CheckGrid(size) {
		cfg.logf("warning: %s", w.Error())
	}
	cfg.logf("voxelizing %d triangles into %dx%dx%d cells (%s)", len(tris), size[0], size[1], size[2], j.Mode)

	opts.Hooks = progress.Hooks{Cancelled: progress.FromContext(ctx)}
	if !cfg.Quiet {
		opts.Hooks.Progress = &progress.Logger{Prefix: "voxblock"}
	}
	result, err := voxelize.Convert(tris, opts)
	if err != nil {
		return err
	}

	families := result.Grid.FamilyCounts()
	cfg.logf("%d commands: %d solid, %d slope, %d corner, %d inverse corner, %d interior",
		len(result.Commands), families[grid.FamilySolid], families[grid.FamilySlope],
		families[grid.FamilyCorner], families[grid.FamilyInverseCorner], result.Counts()[grid.Interior])

	w, closeOut, err := output(j.Output, stdout)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := emit.WriteCommands(w, result.Commands); err != nil {
		closeOut()
		return errors.Wrap(err, "write commands")
	}
	if err := closeOut(); err != nil {
		return errors.Wrap(err, "close output")
	}

	if j.Preview != "" {
		if err := mesh.SavePreview(j.Preview, result.Grid, j.Fill); err != nil {
			return errors.Wrap(err, "write preview")
		}
		cfg.logf("wrote preview %s", j.Preview)
	}
	return nil
}
