package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/voxelsplace/voxkit/vox"
	"go.uber.org/zap"
)

// CreatePack reads .vox files and writes a .voxpack to outputFile.
// Every input is decoded first so a broken file never ends up in a pack.
func CreatePack(inputFiles []string, outputFile string, comp vox.PackCompression) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no .vox files provided")
	}
	type item struct {
		name string
		data []byte
		err  error
	}
	items := make([]item, len(inputFiles))

	var wg sync.WaitGroup
	for i := range inputFiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := inputFiles[i]
			b, err := os.ReadFile(path)
			if err != nil {
				items[i].err = err
				return
			}
			if _, err := vox.DecodeBytes(b, vox.Options{}); err != nil {
				items[i].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			items[i] = item{name: filepath.Base(path), data: b}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]string, len(items))
	pack := &vox.Pack{Entries: make([]vox.PackEntry, len(items))}
	for i, it := range items {
		if it.err != nil {
			return it.err
		}
		if prev, ok := seen[it.name]; ok {
			return fmt.Errorf("duplicate entry name %s (%s and %s)", it.name, prev, inputFiles[i])
		}
		seen[it.name] = inputFiles[i]
		pack.Entries[i] = vox.PackEntry{Name: it.name, Data: it.data}
	}
	start := time.Now()
	data, err := pack.Marshal(comp)
	if err != nil {
		return err
	}
	Logger().Info("pack created",
		zap.String("output", outputFile),
		zap.Int("entries", len(pack.Entries)),
		zap.Stringer("compression", comp),
		zap.Duration("took", time.Since(start)))
	return os.WriteFile(outputFile, data, 0o644)
}

// UnpackToDir writes .vox files from a .voxpack into outputDir.
func UnpackToDir(packFile, outputDir string) error {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return err
	}
	pack, _, err := vox.UnmarshalPack(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(pack.Entries))
	for _, e := range pack.Entries {
		wg.Add(1)
		go func(e vox.PackEntry) {
			defer wg.Done()
			// entry names are base names; reject anything that would escape outputDir
			if e.Name != filepath.Base(e.Name) || e.Name == "." || e.Name == ".." {
				errCh <- fmt.Errorf("invalid entry name %q", e.Name)
				return
			}
			if err := os.WriteFile(filepath.Join(outputDir, e.Name), e.Data, 0o644); err != nil {
				errCh <- err
			}
		}(e)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// UnpackToMemory returns names and raw .vox bytes without writing to disk.
func UnpackToMemory(packFile string) ([]string, [][]byte, error) {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return nil, nil, err
	}
	pack, _, err := vox.UnmarshalPack(data)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(pack.Entries))
	blobs := make([][]byte, len(pack.Entries))
	for i, e := range pack.Entries {
		names[i] = e.Name
		blobs[i] = e.Data
	}
	return names, blobs, nil
}
