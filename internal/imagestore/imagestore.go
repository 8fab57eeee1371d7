// Package imagestore writes uploaded product images beneath a public
// static-asset directory and hands back the URL path they are served at.
package imagestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix uploaded images are served under.
const PublicPrefix = "/images/"

// ErrNoImage signals that the caller supplied no image data. It is not a
// failure: the caller keeps whatever image path it already had.
var ErrNoImage = errors.New("no image provided")

type Store struct {
	dir string
}

// New creates the asset directory if needed and returns a store writing into it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes src under a unique name derived from originalName and returns
// the public path ("/images/<uuid>_<name>"). An empty stream writes nothing
// and returns ErrNoImage. On a failed write the partial file is removed so
// no product ever points at a half-written image.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	if src == nil {
		return "", ErrNoImage
	}

	name := sanitizeFilename(originalName)
	uniqueName := uuid.New().String() + "_" + name
	fullPath := filepath.Join(s.dir, uniqueName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	written, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(fullPath)
		if copyErr != nil {
			return "", fmt.Errorf("write image: %w", copyErr)
		}
		return "", fmt.Errorf("write image: %w", closeErr)
	}
	if written == 0 {
		os.Remove(fullPath)
		return "", ErrNoImage
	}

	return PublicPrefix + uniqueName, nil
}

// sanitizeFilename strips any path components from a client-supplied name so
// uploads cannot escape the asset directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	return name
}
