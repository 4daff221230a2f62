package vox

import (
	"bytes"
	"encoding/binary"
)

// voxBuilder writes .vox fixtures chunk by chunk.
type voxBuilder struct {
	buf bytes.Buffer
}

func newVoxBuilder() *voxBuilder {
	b := &voxBuilder{}
	b.buf.WriteString("VOX ")
	b.i32(150)
	b.buf.WriteString("MAIN")
	b.i32(0)
	b.i32(0)
	return b
}

func (b *voxBuilder) i32(v int32) {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
}

func (b *voxBuilder) chunk(tag string, payload []byte) *voxBuilder {
	b.buf.WriteString(tag)
	b.i32(int32(len(payload)))
	b.i32(0)
	b.buf.Write(payload)
	return b
}

func (b *voxBuilder) size(x, y, z int32) *voxBuilder {
	var p bytes.Buffer
	_ = binary.Write(&p, binary.LittleEndian, [3]int32{x, y, z})
	return b.chunk("SIZE", p.Bytes())
}

func (b *voxBuilder) xyzi(vs ...Voxel) *voxBuilder {
	var p bytes.Buffer
	_ = binary.Write(&p, binary.LittleEndian, int32(len(vs)))
	for _, v := range vs {
		p.Write([]byte{v.X, v.Y, v.Z, v.ColorIndex})
	}
	return b.chunk("XYZI", p.Bytes())
}

func (b *voxBuilder) rgba(pal Palette) *voxBuilder {
	var p bytes.Buffer
	for _, c := range pal {
		p.Write([]byte{c.R, c.G, c.B, c.A})
	}
	return b.chunk("RGBA", p.Bytes())
}

// matl writes a MATL chunk from alternating keys and values.
func (b *voxBuilder) matl(id int32, kv ...string) *voxBuilder {
	var p bytes.Buffer
	_ = binary.Write(&p, binary.LittleEndian, id)
	_ = binary.Write(&p, binary.LittleEndian, int32(len(kv)/2))
	for _, s := range kv {
		_ = binary.Write(&p, binary.LittleEndian, int32(len(s)))
		p.WriteString(s)
	}
	return b.chunk("MATL", p.Bytes())
}

func (b *voxBuilder) bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}
