package vox

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// PackCompression indicates the compression used for the pack content section.
type PackCompression uint8

const (
	PackCompNone PackCompression = 0
	PackCompZlib PackCompression = 1
	PackCompZstd PackCompression = 2
)

func (c PackCompression) String() string {
	switch c {
	case PackCompNone:
		return "none"
	case PackCompZlib:
		return "zlib"
	case PackCompZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParsePackCompression maps a codec name to its PackCompression.
func ParsePackCompression(s string) (PackCompression, error) {
	switch s {
	case "none":
		return PackCompNone, nil
	case "zlib", "":
		return PackCompZlib, nil
	case "zstd":
		return PackCompZstd, nil
	default:
		return 0, fmt.Errorf("unknown pack compression %q", s)
	}
}

const (
	packMagicStr = "VOXPACK\x00"
	packVersion1 = 1
	packHeadLen  = len(packMagicStr) + 2
)

// PackEntry is one named .vox file inside a pack.
type PackEntry struct {
	Name string
	Data []byte
}

// Pack bundles raw .vox files. Identical files are stored once.
type Pack struct {
	Entries []PackEntry
}

// Scene decodes entry i.
func (p *Pack) Scene(i int, opts Options) (*Scene, error) {
	if i < 0 || i >= len(p.Entries) {
		return nil, fmt.Errorf("pack entry %d out of range (%d entries)", i, len(p.Entries))
	}
	return DecodeBytes(p.Entries[i].Data, opts)
}

// Marshal encodes the pack with the given compression codec.
func (p *Pack) Marshal(comp PackCompression) ([]byte, error) {
	blobs, refs := dedupeBlobs(p.Entries)

	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(blobs)))
	for _, blob := range blobs {
		_ = binary.Write(&content, binary.LittleEndian, xxhash.Sum64(blob))
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(blob)))
		_, _ = content.Write(blob)
	}
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(p.Entries)))
	for i, e := range p.Entries {
		nb := []byte(e.Name)
		if len(nb) > 0xFFFF {
			return nil, fmt.Errorf("entry name too long: %s", e.Name)
		}
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		_, _ = content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, uint32(refs[i]))
	}

	var finalContent []byte
	switch comp {
	case PackCompNone:
		finalContent = content.Bytes()
	case PackCompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		finalContent = buf.Bytes()
	case PackCompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		finalContent = enc.EncodeAll(content.Bytes(), nil)
		_ = enc.Close()
	default:
		return nil, fmt.Errorf("unsupported compression: %d", comp)
	}
	Logger().Debug("pack marshalled",
		zap.Int("entries", len(p.Entries)),
		zap.Int("blobs", len(blobs)),
		zap.Stringer("compression", comp),
		zap.Int("raw", content.Len()),
		zap.Int("stored", len(finalContent)))

	var out bytes.Buffer
	out.WriteString(packMagicStr)
	out.WriteByte(packVersion1)
	out.WriteByte(byte(comp))
	_, _ = out.Write(finalContent)
	return out.Bytes(), nil
}

// UnmarshalPack parses a .voxpack and verifies every stored blob against its
// checksum.
func UnmarshalPack(data []byte) (*Pack, PackCompression, error) {
	if len(data) < packHeadLen || string(data[:len(packMagicStr)]) != packMagicStr {
		return nil, 0, fmt.Errorf("not a valid .voxpack")
	}
	version := data[len(packMagicStr)]
	if version != packVersion1 {
		return nil, 0, fmt.Errorf("unsupported pack version: %d", version)
	}
	comp := PackCompression(data[len(packMagicStr)+1])
	contentBytes := data[packHeadLen:]
	switch comp {
	case PackCompNone:
	case PackCompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(contentBytes))
		if err != nil {
			return nil, 0, err
		}
		defer zr.Close()
		b, err := io.ReadAll(zr)
		if err != nil {
			return nil, 0, err
		}
		contentBytes = b
	case PackCompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		b, err := dec.DecodeAll(contentBytes, nil)
		if err != nil {
			return nil, 0, err
		}
		contentBytes = b
	default:
		return nil, 0, fmt.Errorf("unsupported compression: %d", comp)
	}

	r := bytes.NewReader(contentBytes)
	var nBlobs uint32
	if err := binary.Read(r, binary.LittleEndian, &nBlobs); err != nil {
		return nil, 0, err
	}
	blobs := make([][]byte, 0, min(int(nBlobs), 1024))
	for i := uint32(0); i < nBlobs; i++ {
		var sum uint64
		if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
			return nil, 0, err
		}
		var blen uint32
		if err := binary.Read(r, binary.LittleEndian, &blen); err != nil {
			return nil, 0, err
		}
		if int64(blen) > int64(r.Len()) {
			return nil, 0, fmt.Errorf("blob %d: length %d exceeds remaining %d bytes", i, blen, r.Len())
		}
		b := make([]byte, blen)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, 0, err
		}
		if got := xxhash.Sum64(b); got != sum {
			return nil, 0, fmt.Errorf("blob %d: checksum %016x, want %016x", i, got, sum)
		}
		blobs = append(blobs, b)
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, 0, err
	}
	pack := &Pack{Entries: make([]PackEntry, 0, min(int(n), 1024))}
	for i := uint32(0); i < n; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, 0, err
		}
		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return nil, 0, err
		}
		var idx uint32
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return nil, 0, err
		}
		if idx >= nBlobs {
			return nil, 0, fmt.Errorf("entry %s: invalid blob index %d", nameBytes, idx)
		}
		pack.Entries = append(pack.Entries, PackEntry{Name: string(nameBytes), Data: blobs[idx]})
	}
	return pack, comp, nil
}

// dedupeBlobs returns the unique payloads of entries and, per entry, the
// index of its payload.
func dedupeBlobs(entries []PackEntry) ([][]byte, []int) {
	blobs := make([][]byte, 0, len(entries))
	index := make(map[uint64][]int, len(entries))
	refs := make([]int, len(entries))
	for i, e := range entries {
		h := xxhash.Sum64(e.Data)
		ref := -1
		for _, idx := range index[h] {
			if bytes.Equal(blobs[idx], e.Data) {
				ref = idx
				break
			}
		}
		if ref < 0 {
			ref = len(blobs)
			blobs = append(blobs, e.Data)
			index[h] = append(index[h], ref)
		}
		refs[i] = ref
	}
	return blobs, refs
}
