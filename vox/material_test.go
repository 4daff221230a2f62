package vox

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
)

func TestMaterialType(t *testing.T) {
	tests := []struct {
		value string
		want  MaterialType
	}{
		{"_diffuse", MaterialDiffuse},
		{"_metal", MaterialMetal},
		{"_emit", MaterialEmit},
		{"_glass", MaterialGlass},
		{"_media", MaterialCloud},
		{"_blend", MaterialDiffuse},
		{"metal", MaterialDiffuse},
		{"", MaterialDiffuse},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := materialType(tt.value); got != tt.want {
				t.Fatalf("materialType(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestNewMaterial_Defaults(t *testing.T) {
	m, _, err := newMaterial(3, map[string]string{"_type": "_emit", "_emit": "2.5"})
	if err != nil {
		t.Fatalf("newMaterial: %v", err)
	}
	if m.Roughness != 0.1 {
		t.Errorf("roughness = %v, want 0.1", m.Roughness)
	}
	if m.IOR != 0.3 {
		t.Errorf("ior = %v, want 0.3", m.IOR)
	}
	if m.Type != MaterialEmit || m.Emission != 2.5 || m.ID != 3 {
		t.Errorf("material = %+v", m)
	}
	if m.Transparency != 0 || m.Density != 0 || m.Phase != 0 || m.Metallic != 0 ||
		m.Specular != 0 || m.Flux != 0 || m.LDR != 0 {
		t.Errorf("unset parameters are not zero: %+v", m)
	}
}

func TestNewMaterial_AllKeys(t *testing.T) {
	props := map[string]string{
		"_rough": "0.5", "_ior": "1.5", "_trans": "0.25", "_d": "0.05", "_g": "-0.3",
		"_metal": "1", "_sp": "0.8", "_emit": "3", "_flux": " 2 ", "_ldr": "0.4",
		"_weight": "1",
	}
	m, _, err := newMaterial(0, props)
	if err != nil {
		t.Fatalf("newMaterial: %v", err)
	}
	want := Material{
		Type: MaterialDiffuse, Roughness: 0.5, IOR: 1.5, Transparency: 0.25, Density: 0.05,
		Phase: -0.3, Metallic: 1, Specular: 0.8, Emission: 3, Flux: 2, LDR: 0.4,
	}
	m.Properties = nil
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("material = %+v\nwant %+v", m, want)
	}
}

func TestNewMaterial_BadNumber(t *testing.T) {
	_, key, err := newMaterial(0, map[string]string{"_ior": "1,5"})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if key != "_ior" {
		t.Fatalf("failing key = %q, want _ior", key)
	}
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		t.Fatalf("error %T is not a *strconv.NumError", err)
	}
}

func TestDecode_MaterialProperties(t *testing.T) {
	tests := []struct {
		name string
		kv   []string
		want MaterialType
	}{
		{"metal", []string{"_type", "_metal"}, MaterialMetal},
		{"media is cloud", []string{"_type", "_media"}, MaterialCloud},
		{"no type", []string{"_rough", "0.4"}, MaterialDiffuse},
		{"duplicate key keeps last", []string{"_type", "_metal", "_type", "_glass"}, MaterialGlass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeBytes(newVoxBuilder().matl(0, tt.kv...).bytes(), Options{})
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if got := s.Materials[0].Type; got != tt.want {
				t.Fatalf("type = %s, want %s", got, tt.want)
			}
		})
	}

	s, err := DecodeBytes(newVoxBuilder().matl(0, "_type", "_metal").bytes(), Options{})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if s.Materials[0].Roughness != 0.1 {
		t.Fatalf("roughness without _rough = %v, want 0.1", s.Materials[0].Roughness)
	}
	if s.Materials[0].Properties["_type"] != "_metal" {
		t.Fatalf("raw properties not kept: %v", s.Materials[0].Properties)
	}
}
