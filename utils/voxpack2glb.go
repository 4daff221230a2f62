package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/voxelsplace/voxkit/api"
	"github.com/voxelsplace/voxkit/vox"
)

// RunVOXPACK2GLB converts a .voxpack into a .glb.
// Entries are placed one after another along X; every model becomes a node
// named after its entry.
func RunVOXPACK2GLB(inPackPath, outGlbPath string, opts vox.Options) error {
	data, err := os.ReadFile(inPackPath)
	if err != nil {
		return err
	}
	pack, _, err := vox.UnmarshalPack(data)
	if err != nil {
		return err
	}
	if len(pack.Entries) == 0 {
		return fmt.Errorf("empty pack: no entries")
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "VOXPACK -> GLB"
	var originX float64
	for i, e := range pack.Entries {
		scene, err := pack.Scene(i, opts)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		prefix := strings.TrimSuffix(filepath.Base(e.Name), filepath.Ext(e.Name))
		if err := api.AddScene(doc, scene, prefix, originX); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		originX += api.SceneWidth(scene)
	}
	return gltf.SaveBinary(doc, outGlbPath)
}
