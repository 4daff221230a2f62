package vox

import (
	"bytes"
	"testing"
)

func samplePack() *Pack {
	a := newVoxBuilder().size(1, 1, 1).xyzi(Voxel{ColorIndex: 1}).bytes()
	b := newVoxBuilder().size(2, 2, 2).xyzi(Voxel{X: 1, ColorIndex: 2}, Voxel{Z: 1, ColorIndex: 3}).bytes()
	return &Pack{Entries: []PackEntry{
		{Name: "a.vox", Data: a},
		{Name: "b.vox", Data: b},
		{Name: "copy-of-a.vox", Data: append([]byte(nil), a...)},
	}}
}

func TestPack_Roundtrip(t *testing.T) {
	for _, comp := range []PackCompression{PackCompNone, PackCompZlib, PackCompZstd} {
		t.Run(comp.String(), func(t *testing.T) {
			p := samplePack()
			data, err := p.Marshal(comp)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, gotComp, err := UnmarshalPack(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if gotComp != comp {
				t.Fatalf("compression = %s, want %s", gotComp, comp)
			}
			if len(got.Entries) != len(p.Entries) {
				t.Fatalf("entries = %d, want %d", len(got.Entries), len(p.Entries))
			}
			for i, e := range p.Entries {
				if got.Entries[i].Name != e.Name || !bytes.Equal(got.Entries[i].Data, e.Data) {
					t.Fatalf("entry %d differs", i)
				}
			}
			s, err := got.Scene(1, Options{})
			if err != nil {
				t.Fatalf("decode entry: %v", err)
			}
			if s.Counts[0] != 2 {
				t.Fatalf("entry 1 count = %d, want 2", s.Counts[0])
			}
		})
	}
}

func TestPack_Dedupe(t *testing.T) {
	p := samplePack()
	blobs, refs := dedupeBlobs(p.Entries)
	if len(blobs) != 2 {
		t.Fatalf("blobs = %d, want 2", len(blobs))
	}
	if refs[0] != refs[2] || refs[0] == refs[1] {
		t.Fatalf("refs = %v", refs)
	}
}

func TestPack_Corruption(t *testing.T) {
	data, err := samplePack().Marshal(PackCompNone)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// first blob payload starts after header, blob count, checksum and length
	corrupt := append([]byte(nil), data...)
	corrupt[packHeadLen+4+8+4] ^= 0xFF
	if _, _, err := UnmarshalPack(corrupt); err == nil {
		t.Fatalf("expected checksum error")
	}

	if _, _, err := UnmarshalPack([]byte("VOPLPACK\x01\x00")); err == nil {
		t.Fatalf("expected magic error")
	}
	if _, _, err := UnmarshalPack(data[:len(data)-2]); err == nil {
		t.Fatalf("expected error for truncated pack")
	}
	bad := append([]byte(nil), data...)
	bad[len(packMagicStr)+1] = 9
	if _, _, err := UnmarshalPack(bad); err == nil {
		t.Fatalf("expected compression error")
	}
}

func TestPack_SceneOutOfRange(t *testing.T) {
	if _, err := samplePack().Scene(3, Options{}); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestParsePackCompression(t *testing.T) {
	for _, c := range []PackCompression{PackCompNone, PackCompZlib, PackCompZstd} {
		got, err := ParsePackCompression(c.String())
		if err != nil || got != c {
			t.Fatalf("ParsePackCompression(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParsePackCompression("lz4"); err == nil {
		t.Fatalf("expected error for unknown codec")
	}
}
