// Package grid defines the occupancy grid a conversion run works on and the
// closed set of cell classifications it holds.
package grid

// Grid is a dense 3D array of cell types stored as a flat slice. Cell
// (x, y, z) lives at index x + y·X + z·X·Y and covers the unit cube whose
// minimum corner is Origin + (x, y, z) in grid space.
//
// A Grid is owned by a single conversion run and is not safe for
// concurrent mutation.
type Grid struct {
	Origin [3]int
	Size   [3]int
	cells  []CellType
}

// New allocates a grid of the given size with every cell Unclassified.
// Negative extents are treated as zero.
func New(origin, size [3]int) *Grid {
	for i := range size {
		if size[i] < 0 {
			size[i] = 0
		}
	}
	g := &Grid{Origin: origin, Size: size}
	g.cells = make([]CellType, g.Volume())
	return g
}

// Volume returns the number of cells.
func (g *Grid) Volume() int {
	return g.Size[0] * g.Size[1] * g.Size[2]
}

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool {
	return g.Volume() == 0
}

// InBounds reports whether (x, y, z) is a cell of the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < g.Size[0] && y < g.Size[1] && z < g.Size[2]
}

// Index returns the linear index of an in-bounds cell.
func (g *Grid) Index(x, y, z int) int {
	return x + g.Size[0]*(y+g.Size[1]*z)
}

// Coords is the inverse of Index.
func (g *Grid) Coords(i int) (x, y, z int) {
	x = i % g.Size[0]
	i /= g.Size[0]
	return x, i % g.Size[1], i / g.Size[1]
}

// At returns the type of cell (x, y, z). Cells outside the grid read as
// Unclassified, i.e. empty space.
func (g *Grid) At(x, y, z int) CellType {
	if !g.InBounds(x, y, z) {
		return Unclassified
	}
	return g.cells[g.Index(x, y, z)]
}

// Set stores c at (x, y, z). It reports false, leaving the grid untouched,
// when the cell is out of bounds.
func (g *Grid) Set(x, y, z int, c CellType) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	g.cells[g.Index(x, y, z)] = c
	return true
}

// AtIndex returns the type of the cell at linear index i.
func (g *Grid) AtIndex(i int) CellType {
	return g.cells[i]
}

// SetIndex stores c at linear index i.
func (g *Grid) SetIndex(i int, c CellType) {
	g.cells[i] = c
}

// Neighbor returns the type of the cell one step from (x, y, z) in
// direction d. The second result is false when that cell is outside the grid.
func (g *Grid) Neighbor(x, y, z int, d Direction) (CellType, bool) {
	dx, dy, dz := d.Offset()
	x, y, z = x+dx, y+dy, z+dz
	if !g.InBounds(x, y, z) {
		return Unclassified, false
	}
	return g.cells[g.Index(x, y, z)], true
}

// Corners returns the linear indexes of the (up to eight) distinct corner
// cells of the grid.
func (g *Grid) Corners() []int {
	if g.Empty() {
		return nil
	}
	seen := make(map[int]bool, 8)
	var out []int
	for _, x := range [2]int{0, g.Size[0] - 1} {
		for _, y := range [2]int{0, g.Size[1] - 1} {
			for _, z := range [2]int{0, g.Size[2] - 1} {
				i := g.Index(x, y, z)
				if !seen[i] {
					seen[i] = true
					out = append(out, i)
				}
			}
		}
	}
	return out
}

// Replace rewrites every cell of type from to type to and returns how many
// cells changed.
func (g *Grid) Replace(from, to CellType) int {
	n := 0
	for i, c := range g.cells {
		if c == from {
			g.cells[i] = to
			n++
		}
	}
	return n
}

// Count returns the number of cells of type c.
func (g *Grid) Count(c CellType) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Counts returns how many cells hold each cell type. Types with no cells
// are omitted.
func (g *Grid) Counts() map[CellType]int {
	counts := make(map[CellType]int)
	for _, c := range g.cells {
		counts[c]++
	}
	return counts
}

// FamilyCounts sums Counts by shape family. Interior cells are left out;
// use Count(Interior) for them.
func (g *Grid) FamilyCounts() map[Family]int {
	counts := make(map[Family]int)
	for _, c := range g.cells {
		if c == Interior {
			continue
		}
		counts[c.Family()]++
	}
	return counts
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Origin: g.Origin, Size: g.Size}
	c.cells = append([]CellType(nil), g.cells...)
	return c
}

// Equal reports whether two grids have the same placement and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.Origin != o.Origin || g.Size != o.Size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}
