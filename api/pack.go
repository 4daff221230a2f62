package api

import (
	"fmt"
	"sort"

	"github.com/voxelsplace/voxkit/vox"
)

// PackVOXs builds a .voxpack from file blobs keyed by name. Every blob must
// decode as a .vox file. Entries are stored in name order.
func PackVOXs(files map[string][]byte, comp vox.PackCompression) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files")
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	pack := &vox.Pack{Entries: make([]vox.PackEntry, 0, len(names))}
	for _, name := range names {
		if _, err := vox.DecodeBytes(files[name], vox.Options{}); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pack.Entries = append(pack.Entries, vox.PackEntry{Name: name, Data: files[name]})
	}
	return pack.Marshal(comp)
}

// UnpackVOXPACKToMemory returns a map of file name -> .vox bytes from a .voxpack blob.
func UnpackVOXPACKToMemory(packBytes []byte) (map[string][]byte, error) {
	pack, _, err := vox.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(pack.Entries))
	for _, e := range pack.Entries {
		out[e.Name] = e.Data
	}
	return out, nil
}
