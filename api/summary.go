package api

import (
	"encoding/json"

	"github.com/voxelsplace/voxkit/vox"
)

// Summary describes a decoded scene without its voxel data.
type Summary struct {
	Version         int32             `json:"version"`
	YUp             bool              `json:"yUp"`
	Models          []ModelSummary    `json:"models"`
	PaletteSource   string            `json:"paletteSource"`
	MaterialsSource string            `json:"materialsSource"`
	Materials       []MaterialSummary `json:"materials"`
}

// ModelSummary is the size and occupancy of one model.
type ModelSummary struct {
	Size  [3]int32 `json:"size"`
	Count int      `json:"count"`
}

// MaterialSummary lists the parameters of one material.
type MaterialSummary struct {
	ID           int32   `json:"id"`
	Type         string  `json:"type"`
	Roughness    float64 `json:"rough"`
	IOR          float64 `json:"ior"`
	Transparency float64 `json:"trans"`
	Density      float64 `json:"dens"`
	Phase        float64 `json:"phase"`
	Metallic     float64 `json:"metal"`
	Specular     float64 `json:"spec"`
	Emission     float64 `json:"emit"`
	Flux         float64 `json:"flux"`
	LDR          float64 `json:"ldr"`
}

func source(fromFile bool) string {
	if fromFile {
		return "file"
	}
	return "default"
}

// Summarize reports models, palette and materials of scene.
func Summarize(scene *vox.Scene) Summary {
	s := Summary{
		Version:         scene.Version,
		YUp:             scene.YUp,
		Models:          make([]ModelSummary, len(scene.Models)),
		PaletteSource:   source(scene.PaletteFromFile),
		MaterialsSource: source(scene.MaterialsFromFile),
		Materials:       make([]MaterialSummary, len(scene.Materials)),
	}
	for i, m := range scene.Models {
		s.Models[i] = ModelSummary{Size: [3]int32{m.SizeX, m.SizeY, m.SizeZ}, Count: scene.Counts[i]}
	}
	for i, m := range scene.Materials {
		s.Materials[i] = MaterialSummary{
			ID:           m.ID,
			Type:         string(m.Type),
			Roughness:    m.Roughness,
			IOR:          m.IOR,
			Transparency: m.Transparency,
			Density:      m.Density,
			Phase:        m.Phase,
			Metallic:     m.Metallic,
			Specular:     m.Specular,
			Emission:     m.Emission,
			Flux:         m.Flux,
			LDR:          m.LDR,
		}
	}
	return s
}

// SummarizeBytes decodes .vox bytes and returns their summary as JSON.
func SummarizeBytes(voxBytes []byte, opts vox.Options) ([]byte, error) {
	scene, err := vox.DecodeBytes(voxBytes, opts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Summarize(scene))
}
