package api

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/voxelsplace/voxkit/vox"
	"golang.org/x/image/draw"
)

// Limits on the scaled preview image.
const (
	maxPreviewPixels = 1 << 26
	maxPreviewScale  = 1 << 13
)

// RenderTopDown renders model index of scene seen from above: each pixel takes
// the color of the highest voxel in its column. The vertical axis is Y for
// scenes decoded with YUp and Z otherwise. scale enlarges every voxel to a
// scale x scale block.
func RenderTopDown(scene *vox.Scene, index, scale int) (*image.RGBA, error) {
	if index < 0 || index >= len(scene.Models) {
		return nil, fmt.Errorf("model %d out of range (%d models)", index, len(scene.Models))
	}
	if scale < 1 || scale > maxPreviewScale {
		return nil, fmt.Errorf("invalid scale %d", scale)
	}
	m := scene.Models[index]
	w, h := vox.GridDim(m.SizeX), vox.GridDim(m.SizeZ)
	if !scene.YUp {
		h = vox.GridDim(m.SizeY)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("model %d has an empty footprint %dx%d", index, w, h)
	}
	if px := int64(w) * int64(h) * int64(scale) * int64(scale); px > maxPreviewPixels {
		return nil, fmt.Errorf("preview of %dx%d at scale %d exceeds %d pixels", w, h, scale, maxPreviewPixels)
	}

	heights := make([]int, w*h)
	for i := range heights {
		heights[i] = -1
	}
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, v := range m.Voxels {
		x, row, up := int(v.X), int(v.Z), int(v.Y)
		if !scene.YUp {
			row, up = h-1-int(v.Y), int(v.Z)
		}
		if x >= w || row < 0 || row >= h || up <= heights[row*w+x] {
			continue
		}
		heights[row*w+x] = up
		c := scene.ColorOf(v)
		src.SetRGBA(x, row, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	}
	if scale == 1 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// VOXToPNG decodes .vox bytes and returns a PNG top-down preview of one model.
func VOXToPNG(voxBytes []byte, opts vox.Options, index, scale int) ([]byte, error) {
	scene, err := vox.DecodeBytes(voxBytes, opts)
	if err != nil {
		return nil, err
	}
	img, err := RenderTopDown(scene, index, scale)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
