package vox

// File and chunk tags of the MagicaVoxel container.
const (
	magicStr = "VOX "
	rootTag  = "MAIN"

	chunkHeaderLen = 12
	paletteLen     = 256
)

// ChunkHeader is the fixed 12-byte prefix of every chunk after the root.
// SelfSize counts this chunk's own payload; ChildSize counts nested chunks
// and is zero for every leaf chunk the decoder interprets.
type ChunkHeader struct {
	Tag       string
	SelfSize  int32
	ChildSize int32
}

type chunkTag uint8

const (
	tagUnknown chunkTag = iota
	tagSize
	tagXYZI
	tagRGBA
	tagMATL
)

func parseTag(s string) chunkTag {
	switch s {
	case "SIZE":
		return tagSize
	case "XYZI":
		return tagXYZI
	case "RGBA":
		return tagRGBA
	case "MATL":
		return tagMATL
	default:
		return tagUnknown
	}
}
