package vox

// Voxel is one occupied cell of a model. Cells without a Voxel are empty.
type Voxel struct {
	X, Y, Z    uint8
	ColorIndex uint8
}

// Model is one SIZE/XYZI pair, in file order.
type Model struct {
	SizeX, SizeY, SizeZ int32
	Voxels              []Voxel
}

// Count returns the number of occupied voxels.
func (m Model) Count() int { return len(m.Voxels) }

// Color is one RGBA palette entry.
type Color struct {
	R, G, B, A uint8
}

// Palette is shared by all models of a file. Index 0 is reserved for "empty".
type Palette [paletteLen]Color

// Scene is the decoded content of a .vox file.
//
// Models, Counts and the palette are always populated: a file without an RGBA
// chunk gets DefaultPalette and a file without MATL chunks gets a single
// DefaultMaterial.
type Scene struct {
	Version     int32
	ContentSize int32 // root child-size, informational
	YUp         bool  // sizes and positions were converted to Y-up
	Models      []Model
	Counts      []int
	Palette     Palette
	Materials   []Material

	PaletteFromFile   bool
	MaterialsFromFile bool
}

// ModelView correlates one model with the shared palette and the material at
// the same position. Material is nil when fewer materials than models were
// declared. The positional pairing mirrors what existing consumers expect and
// is not keyed by material ID.
type ModelView struct {
	Index    int
	Model    *Model
	Count    int
	Palette  *Palette
	Material *Material
}

// Views zips models, counts, palette and materials by position.
func (s *Scene) Views() []ModelView {
	views := make([]ModelView, len(s.Models))
	for i := range s.Models {
		views[i] = ModelView{
			Index:   i,
			Model:   &s.Models[i],
			Count:   s.Counts[i],
			Palette: &s.Palette,
		}
		if i < len(s.Materials) {
			views[i].Material = &s.Materials[i]
		}
	}
	return views
}

// ColorOf returns the palette entry addressed by the voxel's color index.
func (s *Scene) ColorOf(v Voxel) Color {
	return s.Palette[v.ColorIndex]
}
