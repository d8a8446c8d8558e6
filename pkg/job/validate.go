package job

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chazu/voxblock/pkg/mesh"
)

// Severity indicates whether a validation finding blocks the run or is
// merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks the run
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation result.
type Finding struct {
	Field    string // JSON path of the offending field, empty for job-level findings
	Message  string
	Severity Severity
}

func (f Finding) Error() string {
	if f.Field == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Field, f.Message)
}

// ValidationResult separates blocking errors from advisory warnings.
type ValidationResult struct {
	Errors   []Finding
	Warnings []Finding
}

// Err joins the error findings, or returns nil when there are none.
func (r ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, f := range r.Errors {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Validate checks the job without touching the filesystem. It never
// mutates the job.
func (j *Job) Validate() ValidationResult {
	var all []Finding
	all = append(all, j.validateSettings()...)
	all = append(all, j.validateBlocks()...)
	all = append(all, j.validateGeometry()...)
	all = append(all, j.validateOutputs()...)

	var r ValidationResult
	for _, f := range all {
		if f.Severity == SeverityError {
			r.Errors = append(r.Errors, f)
		} else {
			r.Warnings = append(r.Warnings, f)
		}
	}
	return r
}

func (j *Job) validateSettings() []Finding {
	var out []Finding
	if err := j.Mode.Supported(); err != nil {
		out = append(out, Finding{Field: "mode", Message: err.Error(), Severity: SeverityError})
	}
	if !(j.Scale > 0) || math.IsInf(j.Scale, 0) {
		out = append(out, Finding{Field: "scale", Message: fmt.Sprintf("scale must be a positive number, got %v", j.Scale), Severity: SeverityError})
	}
	if j.MaxCells < 0 {
		out = append(out, Finding{Field: "maxCells", Message: "maxCells must not be negative", Severity: SeverityError})
	}
	return out
}

func (j *Job) validateBlocks() []Finding {
	var out []Finding
	for _, b := range []struct{ field, id string }{
		{"blocks.solid", j.Blocks.Solid},
		{"blocks.slope", j.Blocks.Slope},
		{"blocks.corner", j.Blocks.Corner},
		{"blocks.inverseCorner", j.Blocks.InverseCorner},
	} {
		if strings.TrimSpace(b.id) == "" {
			out = append(out, Finding{Field: b.field, Message: "block identifier must not be empty", Severity: SeverityError})
		}
	}
	if j.Mode.Smoothed() && j.Blocks.Slope != "" && j.Blocks.Slope == j.Blocks.Solid {
		out = append(out, Finding{Field: "blocks.slope", Message: "slope and solid share an identifier", Severity: SeverityWarning})
	}
	return out
}

func (j *Job) validateGeometry() []Finding {
	var out []Finding
	if len(j.Meshes) == 0 && len(j.Primitives) == 0 {
		out = append(out, Finding{Message: "job has no meshes and no primitives", Severity: SeverityError})
	}

	seen := make(map[string]bool)
	for i, m := range j.Meshes {
		field := fmt.Sprintf("meshes[%d]", i)
		if m == "" {
			out = append(out, Finding{Field: field, Message: "mesh path is empty", Severity: SeverityError})
			continue
		}
		if _, err := mesh.FormatOf(m); err != nil {
			out = append(out, Finding{Field: field, Message: err.Error(), Severity: SeverityError})
		}
		if seen[m] {
			out = append(out, Finding{Field: field, Message: fmt.Sprintf("mesh %s is listed twice", m), Severity: SeverityWarning})
		}
		seen[m] = true
	}

	for i, p := range j.Primitives {
		out = append(out, validatePrimitive(p, fmt.Sprintf("primitives[%d]", i))...)
	}
	return out
}

func validatePrimitive(p Primitive, field string) []Finding {
	var out []Finding
	bad := func(msg string) {
		out = append(out, Finding{Field: field, Message: msg, Severity: SeverityError})
	}
	switch p.Kind {
	case PrimBox:
		if !(p.Size.X > 0 && p.Size.Y > 0 && p.Size.Z > 0) {
			bad(fmt.Sprintf("box size must be positive, got (%v, %v, %v)", p.Size.X, p.Size.Y, p.Size.Z))
		}
	case PrimCylinder:
		if !(p.Height > 0) {
			bad(fmt.Sprintf("cylinder height must be positive, got %v", p.Height))
		}
		if !(p.Radius > 0) {
			bad(fmt.Sprintf("cylinder radius must be positive, got %v", p.Radius))
		}
	case PrimSphere:
		if !(p.Radius > 0) {
			bad(fmt.Sprintf("sphere radius must be positive, got %v", p.Radius))
		}
	default:
		bad(fmt.Sprintf("unknown primitive kind %q", p.Kind))
	}
	return out
}

func (j *Job) validateOutputs() []Finding {
	var out []Finding
	if j.Output != "" && j.Output == j.Preview {
		out = append(out, Finding{Field: "preview", Message: "preview would overwrite the command output", Severity: SeverityError})
	}
	if j.Preview != "" {
		if f, err := mesh.FormatOf(j.Preview); err != nil || f != mesh.STL {
			out = append(out, Finding{Field: "preview", Message: "preview must be an .stl file", Severity: SeverityError})
		}
	}
	return out
}

// CheckGrid warns when a grid of the given size exceeds MaxCells. A zero
// MaxCells disables the check.
func (j *Job) CheckGrid(size [3]int) []Finding {
	if j.MaxCells == 0 {
		return nil
	}
	volume := size[0] * size[1] * size[2]
	if volume <= j.MaxCells {
		return nil
	}
	msg := fmt.Sprintf("grid %dx%dx%d has %d cells (limit %d); memory use may be high", size[0], size[1], size[2], volume, j.MaxCells)
	if j.Fill {
		msg += " and fill emits every interior cell"
	}
	return []Finding{{Field: "scale", Message: msg, Severity: SeverityWarning}}
}
