package vox

import "testing"

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		index int
		want  Color
	}{
		{0, Color{0, 0, 0, 0}},
		{1, Color{255, 255, 255, 255}},
		{2, Color{255, 255, 204, 255}},
		{7, Color{255, 204, 255, 255}},
		{36, Color{255, 0, 0, 255}},
		{215, Color{0, 0, 51, 255}},
		{216, Color{238, 0, 0, 255}},
		{226, Color{0, 238, 0, 255}},
		{236, Color{0, 0, 238, 255}},
		{246, Color{238, 238, 238, 255}},
		{255, Color{17, 17, 17, 255}},
	}
	for _, tt := range tests {
		if got := p[tt.index]; got != tt.want {
			t.Errorf("palette[%d] = %+v, want %+v", tt.index, got, tt.want)
		}
	}
	for i := 1; i < len(p); i++ {
		if p[i].A != 255 {
			t.Fatalf("palette[%d] is not opaque", i)
		}
	}
}

func TestDefaultPalette_FromEmptyFile(t *testing.T) {
	s, err := DecodeBytes(newVoxBuilder().size(1, 1, 1).xyzi(Voxel{ColorIndex: 255}).bytes(), DefaultOptions())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if s.Palette != DefaultPalette() {
		t.Fatalf("palette differs from the default table")
	}
	if got := s.ColorOf(s.Models[0].Voxels[0]); got != (Color{17, 17, 17, 255}) {
		t.Fatalf("color of last index = %+v", got)
	}
}
