// Package mesh loads triangle meshes from disk and writes STL previews of
// voxelized grids.
package mesh

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/voxblock/pkg/geom"
	"github.com/chazu/voxblock/pkg/grid"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Format is a mesh file format.
type Format string

const (
	STL Format = "stl"
	OFF Format = "off"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return STL, nil
	case ".off":
		return OFF, nil
	default:
		return "", errors.Errorf("unsupported mesh extension %q (want .stl or .off)", ext)
	}
}

// Load reads the mesh at path.
func Load(path string) ([]geom.Triangle, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load mesh")
	}
	defer f.Close()
	tris, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load mesh %s", path)
	}
	return tris, nil
}

// Read decodes a mesh in the given format.
func Read(r io.Reader, format Format) ([]geom.Triangle, error) {
	var (
		tris []*model3d.Triangle
		err  error
	)
	switch format {
	case STL:
		tris, err = model3d.ReadSTL(r)
	case OFF:
		tris, err = model3d.ReadOFF(r)
	default:
		return nil, errors.Errorf("unsupported mesh format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", format)
	}
	return FromModel3D(tris), nil
}

// FromModel3D converts model3d triangles.
func FromModel3D(tris []*model3d.Triangle) []geom.Triangle {
	out := make([]geom.Triangle, len(tris))
	for i, t := range tris {
		for j, c := range t {
			out[i][j] = v3.Vec{X: c.X, Y: c.Y, Z: c.Z}
		}
	}
	return out
}

// PreviewTriangles returns one unit box per placeable cell of g, in
// absolute coordinates. Interior cells are included only when fill is set.
func PreviewTriangles(g *grid.Grid, fill bool) []geom.Triangle {
	var out []geom.Triangle
	for i := 0; i < g.Volume(); i++ {
		c := g.AtIndex(i)
		if !c.Placeable() || (c == grid.Interior && !fill) {
			continue
		}
		x, y, z := g.Coords(i)
		min := v3.Vec{
			X: float64(g.Origin[0] + x),
			Y: float64(g.Origin[1] + y),
			Z: float64(g.Origin[2] + z),
		}
		out = append(out, geom.BoxTriangles(min, min.Add(v3.Vec{X: 1, Y: 1, Z: 1}))...)
	}
	return out
}

// SavePreview writes PreviewTriangles of g to an STL file.
func SavePreview(path string, g *grid.Grid, fill bool) error {
	return SaveSTL(path, PreviewTriangles(g, fill))
}

// SaveSTL writes tris to an STL file.
func SaveSTL(path string, tris []geom.Triangle) error {
	out := make([]*sdf.Triangle3, len(tris))
	for i, t := range tris {
		out[i] = &sdf.Triangle3{t[0], t[1], t[2]}
	}
	if err := render.SaveSTL(path, out); err != nil {
		return errors.Wrap(err, "save stl")
	}
	return nil
}
