package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/Yamier22/motion-library/internal/pkg/errors"
)

// ThumbnailKind selects one of the two thumbnail subtrees.
type ThumbnailKind string

const (
	ThumbnailKindModels       ThumbnailKind = "models"
	ThumbnailKindTrajectories ThumbnailKind = "trajectories"
)

// thumbnailExtensions is the read-side priority order. When thumbnails with
// different extensions exist for one ID, the earliest extension here wins,
// deterministically.
var thumbnailExtensions = []string{".webp", ".png", ".jpg", ".gif"}

// ThumbnailDir returns the root of one kind's thumbnail subtree. The offline
// generator mirrors the asset directory structure under it.
func (s *Store) ThumbnailDir(kind ThumbnailKind) string {
	return filepath.Join(s.thumbnailsDir, string(kind))
}

// ModelThumbnail looks up the static thumbnail for a model ID.
func (s *Store) ModelThumbnail(id string) (string, error) {
	return s.lookupThumbnail(ThumbnailKindModels, id)
}

// TrajectoryThumbnail looks up the animated thumbnail for a trajectory ID.
func (s *Store) TrajectoryThumbnail(id string) (string, error) {
	return s.lookupThumbnail(ThumbnailKindTrajectories, id)
}

// lookupThumbnail scans the whole kind subtree for <id>.<ext>. The scan is
// deliberately placement-agnostic: the generator mirrors asset directories
// by convention, but lookup must keep working if it ever places files
// differently. Scan cost is proportional to tree size, acceptable at the
// asset volumes this system targets.
func (s *Store) lookupThumbnail(kind ThumbnailKind, id string) (string, error) {
	root := s.ThumbnailDir(kind)
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("%s thumbnail %s: %w", kind, id, apperrors.ErrNotFound)
	}

	byExt := make(map[string]string, len(thumbnailExtensions))
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if strings.TrimSuffix(name, filepath.Ext(name)) != id {
			return nil
		}
		if _, seen := byExt[ext]; !seen {
			byExt[ext] = path
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("storage: scan %s thumbnails: %w", kind, err)
	}
	for _, ext := range thumbnailExtensions {
		if path, ok := byExt[ext]; ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s thumbnail %s: %w", kind, id, apperrors.ErrNotFound)
}
