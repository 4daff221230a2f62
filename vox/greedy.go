package vox

// Vertex is one mesh corner carrying the palette index of its face.
type Vertex struct {
	Position [3]float32
	Color    uint8
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

type dirSpec struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

var directions = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
}

func addQuad(mesh *Mesh, dir dirSpec, start [3]int, w, h int, color uint8, perp int) {
	var base [3]float32
	base[perp] = float32(start[0])
	if dir.normal[perp] > 0 {
		base[perp]++
	}
	base[dir.u] = float32(start[1])
	base[dir.v] = float32(start[2])

	corner := func(hu, wv int) [3]float32 {
		var p [3]float32
		for i := range p {
			p[i] = base[i] + float32(dir.du[i]*hu+dir.dv[i]*wv)
		}
		return p
	}
	verts := [4]Vertex{
		{Position: base, Color: color},
		{Position: corner(h, 0), Color: color},
		{Position: corner(h, w), Color: color},
		{Position: corner(0, w), Color: color},
	}

	// keep counter-clockwise winding seen from outside
	if (dir.normal[perp] < 0) != (perp == 1) {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}

// GenerateMesh builds a greedy-merged surface mesh of g. Adjacent exposed
// faces of the same color on the same plane are merged into one quad.
func GenerateMesh(g *DenseGrid) *Mesh {
	mesh := &Mesh{}
	dims := g.Dims()

	for _, dir := range directions {
		perp := 3 - dir.u - dir.v
		nu, nv := dims[dir.u], dims[dir.v]
		mask := make([]uint8, nu*nv)
		visited := make([]bool, nu*nv)

		for p := 0; p < dims[perp]; p++ {
			clear(mask)
			clear(visited)
			for u := 0; u < nu; u++ {
				for v := 0; v < nv; v++ {
					var pos [3]int
					pos[dir.u], pos[dir.v], pos[perp] = u, v, p
					c := g.At(pos[0], pos[1], pos[2])
					if c == 0 {
						continue
					}
					adj := pos
					if dir.normal[perp] < 0 {
						adj[perp]--
					} else {
						adj[perp]++
					}
					if g.At(adj[0], adj[1], adj[2]) == 0 {
						mask[u*nv+v] = c
					}
				}
			}

			for u := 0; u < nu; u++ {
				for v := 0; v < nv; {
					c := mask[u*nv+v]
					if c == 0 || visited[u*nv+v] {
						v++
						continue
					}
					width := 1
					for w := v + 1; w < nv && mask[u*nv+w] == c && !visited[u*nv+w]; w++ {
						width++
					}
					height := 1
				grow:
					for h := u + 1; h < nu; h++ {
						for w := v; w < v+width; w++ {
							if mask[h*nv+w] != c || visited[h*nv+w] {
								break grow
							}
						}
						height++
					}
					for hu := u; hu < u+height; hu++ {
						for hv := v; hv < v+width; hv++ {
							visited[hu*nv+hv] = true
						}
					}
					addQuad(mesh, dir, [3]int{p, u, v}, width, height, c, perp)
					v += width
				}
			}
		}
	}
	return mesh
}
