package vox

import "testing"

func meshOf(m Model) *Mesh {
	return GenerateMesh(NewDenseGrid(m))
}

func TestGenerateMesh_SingleVoxel(t *testing.T) {
	mesh := meshOf(Model{SizeX: 1, SizeY: 1, SizeZ: 1, Voxels: []Voxel{{ColorIndex: 3}}})
	if len(mesh.Vertices) != 24 || len(mesh.Indices) != 36 {
		t.Fatalf("got %d vertices / %d indices, want 24 / 36", len(mesh.Vertices), len(mesh.Indices))
	}
	for _, v := range mesh.Vertices {
		if v.Color != 3 {
			t.Fatalf("vertex color = %d, want 3", v.Color)
		}
	}
}

func TestGenerateMesh_MergesSameColor(t *testing.T) {
	tests := []struct {
		name  string
		a, b  uint8
		quads int
	}{
		{"same color", 5, 5, 6},
		{"different colors", 5, 6, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := meshOf(Model{SizeX: 2, SizeY: 1, SizeZ: 1, Voxels: []Voxel{
				{X: 0, ColorIndex: tt.a},
				{X: 1, ColorIndex: tt.b},
			}})
			if got := len(mesh.Indices) / 6; got != tt.quads {
				t.Fatalf("quads = %d, want %d", got, tt.quads)
			}
		})
	}
}

func TestGenerateMesh_StaysInBounds(t *testing.T) {
	m := Model{SizeX: 3, SizeY: 4, SizeZ: 2}
	for x := uint8(0); x < 3; x++ {
		for z := uint8(0); z < 2; z++ {
			m.Voxels = append(m.Voxels, Voxel{X: x, Y: x, Z: z, ColorIndex: 1 + x})
		}
	}
	mesh := meshOf(m)
	if len(mesh.Indices) == 0 {
		t.Fatalf("expected a non-empty mesh")
	}
	for _, v := range mesh.Vertices {
		p := v.Position
		if p[0] < 0 || p[0] > 3 || p[1] < 0 || p[1] > 4 || p[2] < 0 || p[2] > 2 {
			t.Fatalf("vertex %v outside model bounds", p)
		}
	}
	for _, i := range mesh.Indices {
		if int(i) >= len(mesh.Vertices) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestNewDenseGrid(t *testing.T) {
	g := NewDenseGrid(Model{SizeX: 2, SizeY: 2, SizeZ: 2, Voxels: []Voxel{
		{X: 1, Y: 0, Z: 1, ColorIndex: 8},
		{X: 2, Y: 0, Z: 0, ColorIndex: 9}, // outside
	}})
	if got := g.At(1, 0, 1); got != 8 {
		t.Fatalf("At(1,0,1) = %d, want 8", got)
	}
	if got := g.At(2, 0, 0); got != 0 {
		t.Fatalf("At outside = %d, want 0", got)
	}
	if g.Set(-1, 0, 0, 1) {
		t.Fatalf("Set outside reported success")
	}
	n := 0
	for _, c := range g.Cells {
		if c != 0 {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("occupied cells = %d, want 1", n)
	}
}

func TestNewDenseGrid_EmptyModel(t *testing.T) {
	g := NewDenseGrid(Model{SizeX: -1, SizeY: 4, SizeZ: 4})
	if len(g.Cells) != 0 {
		t.Fatalf("expected no cells for a negative size")
	}
	if mesh := GenerateMesh(g); len(mesh.Vertices) != 0 {
		t.Fatalf("expected empty mesh")
	}
}

func TestNewDenseGrid_ClampsOversizedModel(t *testing.T) {
	m := Model{SizeX: 2000000, SizeY: 2000000, SizeZ: 2000000, Voxels: []Voxel{{X: 255, Y: 3, Z: 7, ColorIndex: 9}}}
	g := NewDenseGrid(m)
	if g.Dims() != [3]int{MaxGridDim, MaxGridDim, MaxGridDim} {
		t.Fatalf("dims = %v, want %d per axis", g.Dims(), MaxGridDim)
	}
	if got := g.At(255, 3, 7); got != 9 {
		t.Fatalf("At(255,3,7) = %d, want 9", got)
	}
	if mesh := GenerateMesh(g); len(mesh.Vertices) != 24 {
		t.Fatalf("vertices = %d, want 24", len(mesh.Vertices))
	}
}
