package voxelize

import (
	"errors"
	"fmt"

	"github.com/chazu/voxblock/pkg/raster"
)

// Mode is a fidelity mode: how many rays are cast per scan cell and whether
// the grid is refined into slopes and corners afterwards.
type Mode int

const (
	Thin              Mode = iota // one ray per cell, cubes only
	ThinSmoothed                  // one ray per cell, refined
	Thick                         // four rays per cell, cubes only
	ThickSmoothedUp               // four rays per cell, refined
	ThickSmoothedDown             // recognised but not implemented
)

// ErrUnsupportedMode is returned for modes that parse but cannot run.
var ErrUnsupportedMode = errors.New("voxelize: unsupported mode")

var modeNames = map[Mode]string{
	Thin:              "thin",
	ThinSmoothed:      "thin-smoothed",
	Thick:             "thick",
	ThickSmoothedUp:   "thick-smoothed-up",
	ThickSmoothedDown: "thick-smoothed-down",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("voxelize: unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("voxelize: unknown mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Supported reports whether the mode can run. Unknown modes and
// ThickSmoothedDown wrap ErrUnsupportedMode.
func (m Mode) Supported() error {
	switch m {
	case Thin, ThinSmoothed, Thick, ThickSmoothedUp:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMode, m)
	}
}

// Sampling returns the ray pattern of the mode.
func (m Mode) Sampling() raster.Sampling {
	if m == Thick || m == ThickSmoothedUp || m == ThickSmoothedDown {
		return raster.Corners
	}
	return raster.Center
}

// Smoothed reports whether the mode runs the refinement passes.
func (m Mode) Smoothed() bool {
	return m == ThinSmoothed || m == ThickSmoothedUp || m == ThickSmoothedDown
}
