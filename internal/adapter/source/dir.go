// Package source provides the byte fetchers the catalog loader reads its
// dataset files through.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// Dir reads dataset files from a directory tree.
type Dir struct {
	fsys fs.FS
}

// NewDir creates a Dir rooted at path.
func NewDir(path string) *Dir {
	return &Dir{fsys: os.DirFS(path)}
}

// NewFS creates a Dir over an arbitrary file system (embedded data, tests).
func NewFS(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// Fetch returns the content of name. Names are slash-separated and must
// stay inside the root.
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("dir source: %w", domain.NewValidationError("name", "invalid path "+name))
	}

	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dir source: %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("dir source: read %s: %w", name, err)
	}
	return data, nil
}
