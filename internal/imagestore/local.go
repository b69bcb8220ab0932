package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalDir is a Store over a flat directory of image files.
// Subdirectories are not descended into.
type LocalDir struct {
	dir string
}

// NewLocalDir validates that dir exists and is a directory.
func NewLocalDir(dir string) (*LocalDir, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image directory: %s is not a directory", dir)
	}
	return &LocalDir{dir: dir}, nil
}

func (l *LocalDir) List(_ context.Context) ([]Ref, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory: %w", err)
	}

	var refs []Ref
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		full := filepath.Join(l.dir, e.Name())
		abs, err := filepath.Abs(full)
		if err != nil {
			abs = full
		}
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		refs = append(refs, Ref{Key: full, URL: abs, Size: size})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Key < refs[j].Key })
	return refs, nil
}

func (l *LocalDir) Fetch(_ context.Context, ref Ref) ([]byte, error) {
	data, err := os.ReadFile(ref.Key)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

func (l *LocalDir) Source() string { return "dir:" + l.dir }
