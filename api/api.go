package api

import (
	"bytes"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/voxelsplace/voxkit/vox"
)

// modelGap is the empty space left between models laid out along X.
const modelGap = 1

// VOXToGLB takes .vox file bytes and returns .glb bytes, one mesh per model.
func VOXToGLB(voxBytes []byte, opts vox.Options) ([]byte, error) {
	scene, err := vox.DecodeBytes(voxBytes, opts)
	if err != nil {
		return nil, err
	}
	doc, err := SceneToDocument(scene)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SceneToDocument builds a glTF document with one node per model, placed side
// by side along X. Vertex colors come from the palette; each model gets a PBR
// material derived from the material at its position, if any.
func SceneToDocument(scene *vox.Scene) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "VOX -> GLB"
	if err := AddScene(doc, scene, "model", 0); err != nil {
		return nil, err
	}
	return doc, nil
}

// AddScene appends the models of scene to doc's default scene, starting at X
// offset originX. It returns the first error met while writing a model.
func AddScene(doc *gltf.Document, scene *vox.Scene, prefix string, originX float64) error {
	offset := originX
	for _, view := range scene.Views() {
		name := fmt.Sprintf("%s_%d", prefix, view.Index)
		node := &gltf.Node{Name: name, Translation: [3]float64{offset, 0, 0}}
		offset += float64(view.Model.SizeX) + modelGap

		mesh := vox.GenerateMesh(vox.NewDenseGrid(*view.Model))
		if len(mesh.Indices) > 0 {
			prim, err := writePrimitive(doc, mesh, view.Palette)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			doc.Materials = append(doc.Materials, gltfMaterial(name, view.Material, prim.blend))
			prim.p.Material = gltf.Index(len(doc.Materials) - 1)
			doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim.p}})
			node.Mesh = gltf.Index(len(doc.Meshes) - 1)
		}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return nil
}

// SceneWidth is the X extent AddScene uses for scene, gaps included.
func SceneWidth(scene *vox.Scene) float64 {
	var w float64
	for _, m := range scene.Models {
		w += float64(m.SizeX) + modelGap
	}
	return w
}

type primitive struct {
	p     *gltf.Primitive
	blend bool
}

func writePrimitive(doc *gltf.Document, mesh *vox.Mesh, pal *vox.Palette) (primitive, error) {
	positions := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	blend := false
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		colors[i] = linearColor(pal[v.Color])
		if colors[i][3] < 1.0 {
			blend = true
		}
	}
	for _, i := range mesh.Indices {
		if int(i) >= len(positions) {
			return primitive{}, fmt.Errorf("mesh index %d out of range", i)
		}
	}
	indices := make([]uint32, len(mesh.Indices))
	copy(indices, mesh.Indices)

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, flatNormals(positions, indices))
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices: gltf.Index(indicesAccessor),
	}
	return primitive{p: prim, blend: blend}, nil
}

func linearColor(c vox.Color) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// flatNormals computes one normal per triangle. Quads never share vertices,
// so every vertex gets the normal of its own face.
func flatNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[v0], positions[v1], positions[v2]
		vec1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		vec2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		cross := [3]float32{
			vec1[1]*vec2[2] - vec1[2]*vec2[1],
			vec1[2]*vec2[0] - vec1[0]*vec2[2],
			vec1[0]*vec2[1] - vec1[1]*vec2[0],
		}
		length := float32(math.Sqrt(float64(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])))
		if length > 0 {
			cross[0] /= length
			cross[1] /= length
			cross[2] /= length
		}
		normals[v0] = cross
		normals[v1] = cross
		normals[v2] = cross
	}
	return normals
}

// gltfMaterial maps a voxel material to glTF PBR. m may be nil when the model
// has no material at its position.
func gltfMaterial(name string, m *vox.Material, vertexAlpha bool) *gltf.Material {
	def := vox.DefaultMaterial()
	if m == nil {
		m = &def
	}
	base := [4]float64{1, 1, 1, 1}
	metallic := 0.0
	if m.Type == vox.MaterialMetal {
		metallic = clamp01(m.Metallic)
	}
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &base,
		MetallicFactor:  gltf.Float(metallic),
		RoughnessFactor: gltf.Float(clamp01(m.Roughness)),
	}
	material := &gltf.Material{Name: name, PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
	if m.Type == vox.MaterialEmit {
		e := clamp01(m.Emission)
		material.EmissiveFactor = [3]float64{e, e, e}
	}
	if m.Transparency > 0 {
		base[3] = 1 - clamp01(m.Transparency)
	}
	if vertexAlpha || m.Type == vox.MaterialGlass || base[3] < 1 {
		material.AlphaMode = gltf.AlphaBlend
	}
	return material
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
