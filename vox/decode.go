package vox

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"go.uber.org/zap"
)

// maxPrealloc caps the voxel slice allocated from a declared XYZI count.
const maxPrealloc = 1 << 16

// sceneBuilder accumulates chunk payloads in file order until build.
type sceneBuilder struct {
	opts      Options
	version   int32
	content   int32
	sizes     [][3]int32
	voxels    [][]Voxel
	palette   *Palette
	materials []Material
}

// LoadVoxFile reads and decodes the .vox file at path.
func LoadVoxFile(path string, opts Options) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f), opts)
}

// DecodeBytes decodes a .vox file held in memory.
func DecodeBytes(data []byte, opts Options) (*Scene, error) {
	return Decode(bytes.NewReader(data), opts)
}

// Decode reads a complete .vox stream from r. Any error is a *FormatError
// and no scene is returned with it.
func Decode(r io.Reader, opts Options) (*Scene, error) {
	cr := newChunkReader(r)
	b := &sceneBuilder{opts: opts}
	if err := b.readHeader(cr); err != nil {
		return nil, err
	}
	for {
		h, ok, err := cr.nextHeader()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := b.readChunk(cr, h); err != nil {
			return nil, err
		}
	}
	return b.build(), nil
}

func (b *sceneBuilder) readHeader(r *chunkReader) error {
	magic, err := r.tag("magic")
	if err != nil {
		return err
	}
	if magic != magicStr {
		return r.fail(KindBadMagic, nil, "got %q, want %q", magic, magicStr)
	}
	if b.version, err = r.int32("version"); err != nil {
		return err
	}
	root, err := r.tag("root tag")
	if err != nil {
		return err
	}
	if root != rootTag {
		return r.fail(KindBadRootChunk, nil, "got %q, want %q", root, rootTag)
	}
	r.chunk = rootTag
	self, err := r.int32("root size")
	if err != nil {
		return err
	}
	if self != 0 {
		return r.fail(KindBadRootChunk, nil, "root content size %d, want 0", self)
	}
	if b.content, err = r.int32("root children size"); err != nil {
		return err
	}
	return nil
}

func (b *sceneBuilder) readChunk(r *chunkReader, h ChunkHeader) error {
	r.chunk = h.Tag
	log := Logger()
	if ce := log.Check(zap.DebugLevel, "chunk"); ce != nil {
		ce.Write(
			zap.String("tag", h.Tag),
			zap.Int32("self", h.SelfSize),
			zap.Int32("children", h.ChildSize),
			zap.Int64("offset", r.off-chunkHeaderLen),
		)
	}
	if h.SelfSize < 0 {
		return r.fail(KindMalformed, nil, "negative chunk size %d", h.SelfSize)
	}
	tag := parseTag(h.Tag)
	if (tag == tagSize || tag == tagXYZI) && h.ChildSize != 0 {
		return r.fail(KindMalformed, nil, "leaf chunk declares %d child bytes", h.ChildSize)
	}
	if tag != tagUnknown && h.ChildSize != 0 {
		log.Warn("leaf chunk declares children",
			zap.String("tag", h.Tag),
			zap.Int32("children", h.ChildSize))
	}

	switch tag {
	case tagSize:
		return b.readSize(r)
	case tagXYZI:
		return b.readXYZI(r)
	case tagRGBA:
		return b.readRGBA(r)
	case tagMATL:
		return b.readMATL(r, h)
	default:
		log.Debug("skipping chunk", zap.String("tag", h.Tag), zap.Int32("bytes", h.SelfSize))
		return r.skip(int64(h.SelfSize))
	}
}

func (b *sceneBuilder) readSize(r *chunkReader) error {
	var s [3]int32
	for i := range s {
		v, err := r.int32("size")
		if err != nil {
			return err
		}
		s[i] = v
	}
	s[0], s[1], s[2] = b.opts.size(s[0], s[1], s[2])
	b.sizes = append(b.sizes, s)
	return nil
}

func (b *sceneBuilder) readXYZI(r *chunkReader) error {
	if len(b.voxels) >= len(b.sizes) {
		return r.fail(KindMalformed, nil, "voxel data for model %d without a SIZE chunk", len(b.voxels))
	}
	n, err := r.int32("voxel count")
	if err != nil {
		return err
	}
	if n < 0 {
		return r.fail(KindMalformed, nil, "negative voxel count %d", n)
	}
	voxels := make([]Voxel, 0, min(int(n), maxPrealloc))
	var rec [4]byte
	for i := int32(0); i < n; i++ {
		if err := r.full(rec[:], "voxel"); err != nil {
			return err
		}
		v := Voxel{X: rec[0], Y: rec[1], Z: rec[2], ColorIndex: rec[3]}
		voxels = append(voxels, b.opts.voxel(v))
	}
	b.voxels = append(b.voxels, voxels)
	return nil
}

func (b *sceneBuilder) readRGBA(r *chunkReader) error {
	var raw [paletteLen * 4]byte
	if err := r.full(raw[:], "palette"); err != nil {
		return err
	}
	p := new(Palette)
	for i := range p {
		p[i] = Color{R: raw[i*4], G: raw[i*4+1], B: raw[i*4+2], A: raw[i*4+3]}
	}
	if b.palette != nil {
		Logger().Debug("palette redefined, keeping the last one")
	}
	b.palette = p
	return nil
}

// readMATL trusts the declared chunk size to delimit the property list. A
// size that disagrees with the encoded strings desynchronizes the stream.
func (b *sceneBuilder) readMATL(r *chunkReader, h ChunkHeader) error {
	id, err := r.int32("material id")
	if err != nil {
		return err
	}
	if _, err := r.int32("material type"); err != nil {
		return err
	}
	props := make(map[string]string)
	for remaining := int64(h.SelfSize) - 8; remaining > 0; {
		key, n, err := r.string("property key")
		if err != nil {
			return err
		}
		remaining -= n
		val, n, err := r.string("property value")
		if err != nil {
			return err
		}
		remaining -= n
		props[key] = val
	}
	m, key, err := newMaterial(id, props)
	if err != nil {
		return r.fail(KindNumberFormat, err, "material %d property %s", id, key)
	}
	b.materials = append(b.materials, m)
	return nil
}

func (b *sceneBuilder) build() *Scene {
	s := &Scene{
		Version:     b.version,
		ContentSize: b.content,
		YUp:         b.opts.YUp,
		Models:      make([]Model, len(b.sizes)),
		Counts:      make([]int, len(b.sizes)),
	}
	for i, size := range b.sizes {
		m := Model{SizeX: size[0], SizeY: size[1], SizeZ: size[2]}
		if i < len(b.voxels) {
			m.Voxels = b.voxels[i]
		}
		s.Models[i] = m
		s.Counts[i] = m.Count()
	}
	if b.palette != nil {
		s.Palette = *b.palette
		s.PaletteFromFile = true
	} else {
		s.Palette = DefaultPalette()
	}
	if len(b.materials) > 0 {
		s.Materials = b.materials
		s.MaterialsFromFile = true
	} else {
		s.Materials = []Material{DefaultMaterial()}
	}
	return s
}
