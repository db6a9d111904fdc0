package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Yamier22/motion-library/internal/domain"
	apperrors "github.com/Yamier22/motion-library/internal/pkg/errors"
	"github.com/Yamier22/motion-library/internal/trajfile"
)

// ListTrajectories enumerates every trajectory file under the root,
// optionally filtered to one category. Category is the immediate parent
// directory relative to the root, empty for files at the root itself.
// Results are ordered by modification time, most recent first.
func (s *Store) ListTrajectories(category string) ([]domain.TrajectoryMetadata, error) {
	out := []domain.TrajectoryMetadata{}
	err := filepath.WalkDir(s.trajectoriesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !trajfile.IsTrajectoryFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.trajectoriesDir, path)
		if err != nil {
			return err
		}
		meta := s.trajectoryMetadata(path, rel)
		if category != "" && meta.Category != category {
			return nil
		}
		out = append(out, meta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list trajectories: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}

// GetTrajectory resolves an ID to the absolute file path by rescanning the
// same space ListTrajectories walks. O(n) by design: with no persistent
// index, a full scan is the ground truth for id-to-path correspondence.
func (s *Store) GetTrajectory(id string) (string, error) {
	var found string
	err := filepath.WalkDir(s.trajectoriesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !trajfile.IsTrajectoryFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.trajectoriesDir, path)
		if err != nil {
			return err
		}
		if FileIDFromPath(rel) == id {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("storage: resolve trajectory %s: %w", id, err)
	}
	if found == "" {
		return "", fmt.Errorf("trajectory %s: %w", id, apperrors.ErrNotFound)
	}
	return found, nil
}

// SaveTrajectory writes the file under the root, creating the category
// directory when needed. A name collision overwrites silently. Returns the
// re-derived metadata of the stored file.
func (s *Store) SaveTrajectory(filename string, content []byte, category string) (domain.TrajectoryMetadata, error) {
	if err := cleanName(filename); err != nil {
		return domain.TrajectoryMetadata{}, err
	}
	if !trajfile.IsTrajectoryFile(filename) {
		return domain.TrajectoryMetadata{}, fmt.Errorf("only .npy and .npz files are supported: %w", apperrors.ErrInvalidInput)
	}

	dir := s.trajectoriesDir
	if category != "" {
		if err := cleanName(category); err != nil {
			return domain.TrajectoryMetadata{}, err
		}
		dir = filepath.Join(s.trajectoriesDir, category)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.TrajectoryMetadata{}, fmt.Errorf("storage: create category dir %s: %w", category, err)
		}
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return domain.TrajectoryMetadata{}, fmt.Errorf("storage: write trajectory %s: %w", filename, err)
	}
	rel, err := filepath.Rel(s.trajectoriesDir, path)
	if err != nil {
		return domain.TrajectoryMetadata{}, err
	}
	s.log.Info("trajectory saved", "path", rel, "bytes", len(content))
	return s.trajectoryMetadata(path, rel), nil
}

// DeleteTrajectory removes the file an ID resolves to.
func (s *Store) DeleteTrajectory(id string) error {
	path, err := s.GetTrajectory(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("storage: delete trajectory %s: %w", id, err)
	}
	s.log.Info("trajectory deleted", "id", id)
	return nil
}

func (s *Store) trajectoryMetadata(path, rel string) domain.TrajectoryMetadata {
	meta := domain.TrajectoryMetadata{
		ID:       FileIDFromPath(rel),
		Filename: filepath.Base(rel),
	}
	if parent := filepath.Dir(rel); parent != "." {
		meta.Category = filepath.ToSlash(parent)
	}
	if info, err := os.Stat(path); err == nil {
		meta.FileSize = info.Size()
		meta.UploadDate = info.ModTime()
	}
	// A malformed payload degrades to absent shape fields; the file still
	// lists and can still be downloaded or deleted.
	info, err := trajfile.Probe(path)
	if err != nil {
		s.log.Warn("trajectory payload not parseable", "path", rel, "error", err)
		return meta
	}
	meta.FrameCount = info.FrameCount
	meta.FrameRate = info.FrameRate
	meta.NumJoints = info.NumJoints
	return meta
}
