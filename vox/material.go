package vox

import (
	"strconv"
	"strings"
)

// MaterialType is the rendering model of a material.
type MaterialType string

const (
	MaterialDiffuse MaterialType = "diffuse"
	MaterialMetal   MaterialType = "metal"
	MaterialEmit    MaterialType = "emit"
	MaterialGlass   MaterialType = "glass"
	MaterialCloud   MaterialType = "cloud"
)

// Material holds the parameters of one MATL chunk.
type Material struct {
	ID   int32 // declared material id; materials are not indexed by it
	Type MaterialType

	Roughness    float64
	IOR          float64
	Transparency float64
	Density      float64
	Phase        float64
	Metallic     float64
	Specular     float64
	Emission     float64
	Flux         float64
	LDR          float64 // luminous density ratio

	// Properties keeps every raw key/value pair of the chunk.
	Properties map[string]string
}

// DefaultMaterial returns the material used for absent keys and for files
// without any MATL chunk.
func DefaultMaterial() Material {
	return Material{
		Type:      MaterialDiffuse,
		Roughness: 0.1,
		IOR:       0.3,
	}
}

// materialFields maps property keys to the float parameter they set.
var materialFields = []struct {
	key   string
	field func(*Material) *float64
}{
	{"_rough", func(m *Material) *float64 { return &m.Roughness }},
	{"_ior", func(m *Material) *float64 { return &m.IOR }},
	{"_trans", func(m *Material) *float64 { return &m.Transparency }},
	{"_d", func(m *Material) *float64 { return &m.Density }},
	{"_g", func(m *Material) *float64 { return &m.Phase }},
	{"_metal", func(m *Material) *float64 { return &m.Metallic }},
	{"_sp", func(m *Material) *float64 { return &m.Specular }},
	{"_emit", func(m *Material) *float64 { return &m.Emission }},
	{"_flux", func(m *Material) *float64 { return &m.Flux }},
	{"_ldr", func(m *Material) *float64 { return &m.LDR }},
}

// materialType resolves a `_type` value. The stored value carries a leading
// marker byte ("_metal"); cloud materials are written as "_media".
func materialType(v string) MaterialType {
	if len(v) > 0 {
		v = v[1:]
	}
	switch MaterialType(v) {
	case MaterialDiffuse, MaterialMetal, MaterialEmit, MaterialGlass:
		return MaterialType(v)
	}
	if v == "media" {
		return MaterialCloud
	}
	return MaterialDiffuse
}

// newMaterial builds a Material from a MATL property dictionary. The returned
// error is a *strconv.NumError naming the offending value; key is the
// property that failed.
func newMaterial(id int32, props map[string]string) (m Material, key string, err error) {
	m = DefaultMaterial()
	m.ID = id
	m.Properties = props
	if v, ok := props["_type"]; ok {
		m.Type = materialType(v)
	}
	for _, f := range materialFields {
		v, ok := props[f.key]
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Material{}, f.key, err
		}
		*f.field(&m) = x
	}
	return m, "", nil
}
