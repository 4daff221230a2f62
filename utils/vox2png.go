package utils

import (
	"os"

	"github.com/voxelsplace/voxkit/api"
	"github.com/voxelsplace/voxkit/vox"
)

// RunVOX2PNG writes a top-down PNG preview of one model of a .vox file.
func RunVOX2PNG(inPath, outPath string, opts vox.Options, model, scale int) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	out, err := api.VOXToPNG(data, opts, model, scale)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}
