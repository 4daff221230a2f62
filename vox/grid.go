package vox

// DenseGrid is a model expanded into a flat array of color indices,
// x-major within y within z. A zero cell is empty.
type DenseGrid struct {
	SizeX, SizeY, SizeZ int
	Cells               []uint8
}

// MaxGridDim is the largest grid extent per axis. Voxel coordinates are
// single bytes, so nothing beyond it can ever be occupied.
const MaxGridDim = 256

// GridDim clamps a declared model size to [0, MaxGridDim].
func GridDim(size int32) int {
	return int(min(max(size, 0), MaxGridDim))
}

// NewDenseGrid expands m. Voxels outside the model's declared size and
// voxels using color index 0 are dropped. Sizes above MaxGridDim are
// clamped.
func NewDenseGrid(m Model) *DenseGrid {
	g := &DenseGrid{
		SizeX: GridDim(m.SizeX),
		SizeY: GridDim(m.SizeY),
		SizeZ: GridDim(m.SizeZ),
	}
	g.Cells = make([]uint8, g.SizeX*g.SizeY*g.SizeZ)
	for _, v := range m.Voxels {
		g.Set(int(v.X), int(v.Y), int(v.Z), v.ColorIndex)
	}
	return g
}

func (g *DenseGrid) inside(x, y, z int) bool {
	return x >= 0 && x < g.SizeX && y >= 0 && y < g.SizeY && z >= 0 && z < g.SizeZ
}

// At returns the color index at (x, y, z), or 0 outside the grid.
func (g *DenseGrid) At(x, y, z int) uint8 {
	if !g.inside(x, y, z) {
		return 0
	}
	return g.Cells[x+y*g.SizeX+z*g.SizeX*g.SizeY]
}

// Set stores c at (x, y, z) and reports whether the cell exists.
func (g *DenseGrid) Set(x, y, z int, c uint8) bool {
	if !g.inside(x, y, z) {
		return false
	}
	g.Cells[x+y*g.SizeX+z*g.SizeX*g.SizeY] = c
	return true
}

// Dims returns the grid size as an array indexable by axis.
func (g *DenseGrid) Dims() [3]int {
	return [3]int{g.SizeX, g.SizeY, g.SizeZ}
}
