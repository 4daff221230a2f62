package utils

import (
	"github.com/qmuntal/gltf"
	"github.com/voxelsplace/voxkit/api"
	"github.com/voxelsplace/voxkit/vox"
	"go.uber.org/zap"
)

// RunVOX2GLB converts a .vox file into a .glb with one node per model.
func RunVOX2GLB(inPath, outPath string, opts vox.Options) error {
	scene, err := vox.LoadVoxFile(inPath, opts)
	if err != nil {
		return err
	}
	doc, err := api.SceneToDocument(scene)
	if err != nil {
		return err
	}
	Logger().Info("writing glb",
		zap.String("input", inPath),
		zap.String("output", outPath),
		zap.Int("models", len(scene.Models)),
		zap.Int("meshes", len(doc.Meshes)))
	return gltf.SaveBinary(doc, outPath)
}
