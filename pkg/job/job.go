// Package job describes one conversion request: which geometry to load or
// generate, how to voxelize it and where to write the result. Jobs come from
// JSON config files, from scripts evaluated by the engine package, or from
// command-line flags layered over Default.
package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/voxblock/pkg/emit"
	"github.com/chazu/voxblock/pkg/voxelize"
)

// Vec3 is a 3D vector in job units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// PrimitiveKind identifies a generated solid.
type PrimitiveKind string

const (
	PrimBox      PrimitiveKind = "box"
	PrimCylinder PrimitiveKind = "cylinder"
	PrimSphere   PrimitiveKind = "sphere"
)

// Primitive is a generated solid placed in the scene. Size applies to boxes,
// whose minimum corner sits at the origin before placement; Height and
// Radius apply to cylinders (along z) and spheres, which are centred.
// Rotation is in degrees and is applied before Translation.
type Primitive struct {
	Name        string        `json:"name,omitempty"`
	Kind        PrimitiveKind `json:"kind"`
	Size        Vec3          `json:"size"`
	Height      float64       `json:"height,omitempty"`
	Radius      float64       `json:"radius,omitempty"`
	Translation Vec3          `json:"at"`
	Rotation    Vec3          `json:"rotate"`
}

// DefaultMaxCells is the grid volume above which validation warns.
const DefaultMaxCells = 256 * 256 * 256

// Job is a complete conversion request.
type Job struct {
	Meshes     []string         `json:"meshes,omitempty"`
	Primitives []Primitive      `json:"primitives,omitempty"`
	Scale      float64          `json:"scale"`
	Mode       voxelize.Mode    `json:"mode"`
	Fill       bool             `json:"fill"`
	Blocks     emit.Identifiers `json:"blocks"`
	// Output is the command file; empty means standard output.
	Output string `json:"output,omitempty"`
	// Preview is an optional STL file of the occupied cells.
	Preview  string `json:"preview,omitempty"`
	MaxCells int    `json:"maxCells,omitempty"`
}

// DefaultBlocks are the large armor block identifiers.
var DefaultBlocks = emit.Identifiers{
	Solid:         "LargeBlockArmorBlock",
	Slope:         "LargeBlockArmorSlope",
	Corner:        "LargeBlockArmorCorner",
	InverseCorner: "LargeBlockArmorCornerInv",
}

// Default returns a job with no geometry and default settings.
func Default() *Job {
	return &Job{
		Scale:    1,
		Mode:     voxelize.Thin,
		Blocks:   DefaultBlocks,
		MaxCells: DefaultMaxCells,
	}
}

// Options returns the voxelize options the job asks for. Hooks are left for
// the caller.
func (j *Job) Options() voxelize.Options {
	return voxelize.Options{
		Scale:       j.Scale,
		Mode:        j.Mode,
		Fill:        j.Fill,
		Identifiers: j.Blocks,
	}
}

// maxFileSize bounds config files read by Load.
const maxFileSize = 1 * 1024 * 1024

// Load reads a JSON job file. Fields missing from the file keep their
// Default values. Relative mesh paths are resolved against the file's
// directory. The job is validated and any error finding fails the load.
func Load(path string) (*Job, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("job file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat job file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("job file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	j := Default()
	if err := json.Unmarshal(data, j); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	j.ResolvePaths(filepath.Dir(cleanPath))

	if err := j.Validate().Err(); err != nil {
		return nil, fmt.Errorf("invalid job: %w", err)
	}
	return j, nil
}

// ResolvePaths makes relative mesh paths relative to dir.
func (j *Job) ResolvePaths(dir string) {
	for i, m := range j.Meshes {
		if m != "" && !filepath.IsAbs(m) {
			j.Meshes[i] = filepath.Join(dir, m)
		}
	}
}
