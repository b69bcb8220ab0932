// Package imagestore enumerates and fetches the diagram images a
// generation batch runs over, from a local directory or an S3 bucket.
package imagestore

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Ref identifies one image in a store.
type Ref struct {
	// Key is the store-relative identifier: a file path for local
	// stores, an object key for S3.
	Key string

	// URL is the canonical address recorded on generated questions.
	// Local stores use the absolute file path; S3 stores use the
	// public object URL.
	URL string

	// Size in bytes when known, 0 otherwise.
	Size int64
}

// Filename returns the base filename of the reference.
func (r Ref) Filename() string { return path.Base(strings.ReplaceAll(r.Key, "\\", "/")) }

// Store lists and fetches diagram images.
type Store interface {
	// List returns image references in deterministic (sorted) order,
	// filtered to supported image extensions.
	List(ctx context.Context) ([]Ref, error)

	// Fetch returns the raw bytes of one image.
	Fetch(ctx context.Context, ref Ref) ([]byte, error)

	// Source describes the store for stats output, e.g.
	// "dir:./images" or "s3://bucket/prefix".
	Source() string
}

// imageExtensions are the extensions a listing accepts, compared
// case-insensitively.
var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
}

// IsImageFile reports whether name has a supported image extension.
func IsImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(name))]
	return ok
}

// MIMEType returns the media type for a supported image filename.
func MIMEType(name string) (string, error) {
	mt, ok := imageExtensions[strings.ToLower(path.Ext(name))]
	if !ok {
		return "", fmt.Errorf("unsupported image extension on %q", name)
	}
	return mt, nil
}
