// Package storage is the filesystem-backed asset catalog. There is no
// database and no persistent index: every listing and lookup is derived
// fresh from the directory trees, so the filesystem stays the single source
// of truth shared by the server and the offline thumbnail generator.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/Yamier22/motion-library/internal/pkg/errors"
	"github.com/Yamier22/motion-library/internal/pkg/logger"
)

// ModelExt is the only accepted model description extension.
const ModelExt = ".xml"

type Store struct {
	log *logger.Logger

	modelsDir       string
	trajectoriesDir string
	thumbnailsDir   string
}

// New builds a Store over the three asset roots, creating the model and
// trajectory roots if absent. The thumbnail root is owned by the offline
// generator and is never created here.
func New(log *logger.Logger, modelsDir, trajectoriesDir, thumbnailsDir string) (*Store, error) {
	for _, dir := range []string{modelsDir, trajectoriesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create asset root %s: %w", dir, err)
		}
	}
	return &Store{
		log:             log.With("component", "storage"),
		modelsDir:       modelsDir,
		trajectoriesDir: trajectoriesDir,
		thumbnailsDir:   thumbnailsDir,
	}, nil
}

func (s *Store) ModelsDir() string       { return s.modelsDir }
func (s *Store) TrajectoriesDir() string { return s.trajectoriesDir }
func (s *Store) ThumbnailsDir() string   { return s.thumbnailsDir }

// cleanName rejects filenames and category/model names that would escape the
// target directory on save.
func cleanName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty name: %w", apperrors.ErrInvalidInput)
	}
	if name != filepath.Base(name) || name == ".." || name == "." {
		return fmt.Errorf("name %q must not contain path separators: %w", name, apperrors.ErrInvalidInput)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators: %w", name, apperrors.ErrInvalidInput)
	}
	return nil
}
