package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Yamier22/motion-library/internal/domain"
	apperrors "github.com/Yamier22/motion-library/internal/pkg/errors"
)

// modelRelPaths enumerates the listing space for models: description files
// at the root, and description files that are direct children of first-level
// model directories. Deeper XML files are auxiliary directory files and are
// never top-level results.
func (s *Store) modelRelPaths() ([]string, error) {
	entries, err := os.ReadDir(s.modelsDir)
	if err != nil {
		return nil, fmt.Errorf("storage: read models root: %w", err)
	}
	var rels []string
	for _, entry := range entries {
		if entry.IsDir() {
			children, err := os.ReadDir(filepath.Join(s.modelsDir, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("storage: read model dir %s: %w", entry.Name(), err)
			}
			for _, child := range children {
				if !child.IsDir() && strings.EqualFold(filepath.Ext(child.Name()), ModelExt) {
					rels = append(rels, filepath.Join(entry.Name(), child.Name()))
				}
			}
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ModelExt) {
			rels = append(rels, entry.Name())
		}
	}
	return rels, nil
}

// ListModels enumerates model description files, most recently modified
// first.
func (s *Store) ListModels() ([]domain.ModelMetadata, error) {
	rels, err := s.modelRelPaths()
	if err != nil {
		return nil, err
	}
	out := make([]domain.ModelMetadata, 0, len(rels))
	for _, rel := range rels {
		out = append(out, s.modelMetadata(rel))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}

// GetModel resolves an ID to the absolute description file path.
func (s *Store) GetModel(id string) (string, error) {
	rel, err := s.modelRel(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.modelsDir, rel), nil
}

func (s *Store) modelRel(id string) (string, error) {
	rels, err := s.modelRelPaths()
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if FileIDFromPath(rel) == id {
			return rel, nil
		}
	}
	return "", fmt.Errorf("model %s: %w", id, apperrors.ErrNotFound)
}

// SaveModel writes a description file, under a named model directory when
// modelName is given. A name collision overwrites silently.
func (s *Store) SaveModel(filename string, content []byte, modelName string) (domain.ModelMetadata, error) {
	if err := cleanName(filename); err != nil {
		return domain.ModelMetadata{}, err
	}
	if !strings.EqualFold(filepath.Ext(filename), ModelExt) {
		return domain.ModelMetadata{}, fmt.Errorf("only %s files are supported: %w", ModelExt, apperrors.ErrInvalidInput)
	}

	dir := s.modelsDir
	rel := filename
	if modelName != "" {
		if err := cleanName(modelName); err != nil {
			return domain.ModelMetadata{}, err
		}
		dir = filepath.Join(s.modelsDir, modelName)
		rel = filepath.Join(modelName, filename)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.ModelMetadata{}, fmt.Errorf("storage: create model dir %s: %w", modelName, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, filename), content, 0o644); err != nil {
		return domain.ModelMetadata{}, fmt.Errorf("storage: write model %s: %w", filename, err)
	}
	s.log.Info("model saved", "path", filepath.ToSlash(rel), "bytes", len(content))
	return s.modelMetadata(rel), nil
}

// DeleteModel removes the description file only. Auxiliary files in the
// model directory stay in place.
func (s *Store) DeleteModel(id string) error {
	path, err := s.GetModel(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("storage: delete model %s: %w", id, err)
	}
	s.log.Info("model deleted", "id", id)
	return nil
}

// ModelDirectoryFiles returns every file in the owning model's directory
// subtree as slash-separated paths relative to that directory. A root-level
// model owns only its description file.
func (s *Store) ModelDirectoryFiles(id string) ([]string, error) {
	rel, err := s.modelRel(id)
	if err != nil {
		return nil, err
	}
	if filepath.Dir(rel) == "." {
		return []string{rel}, nil
	}

	owningDir := filepath.Join(s.modelsDir, filepath.Dir(rel))
	var files []string
	err = filepath.WalkDir(owningDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fileRel, err := filepath.Rel(owningDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(fileRel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: walk model dir for %s: %w", id, err)
	}
	sort.Strings(files)
	return files, nil
}

// ModelFile resolves a requested path inside the owning model's directory.
// Any request that normalizes outside that directory is rejected, including
// absolute paths, ".." escapes and symlinks pointing out of the subtree.
// This guard is what keeps one model's files from exposing a sibling's.
func (s *Store) ModelFile(id, requested string) (string, error) {
	rel, err := s.modelRel(id)
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(requested) || strings.HasPrefix(requested, "/") || strings.HasPrefix(requested, `\`) {
		return "", fmt.Errorf("absolute path %q: %w", requested, apperrors.ErrForbidden)
	}
	cleaned := filepath.Clean(filepath.FromSlash(requested))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the model directory: %w", requested, apperrors.ErrForbidden)
	}

	// Root-level models own no subtree; only the description file itself is
	// reachable.
	if filepath.Dir(rel) == "." {
		if cleaned != rel {
			return "", fmt.Errorf("path %q outside the model directory: %w", requested, apperrors.ErrForbidden)
		}
		return filepath.Join(s.modelsDir, rel), nil
	}

	owningDir := filepath.Join(s.modelsDir, filepath.Dir(rel))
	target := filepath.Join(owningDir, cleaned)

	resolvedDir, err := filepath.EvalSymlinks(owningDir)
	if err != nil {
		return "", fmt.Errorf("storage: resolve model dir for %s: %w", id, err)
	}
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file %q in model %s: %w", requested, id, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("storage: resolve %q: %w", requested, err)
	}
	within, err := filepath.Rel(resolvedDir, resolved)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q outside the model directory: %w", requested, apperrors.ErrForbidden)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("file %q in model %s: %w", requested, id, apperrors.ErrNotFound)
	}
	if info.IsDir() {
		return "", fmt.Errorf("file %q in model %s: %w", requested, id, apperrors.ErrNotFound)
	}
	return target, nil
}

func (s *Store) modelMetadata(rel string) domain.ModelMetadata {
	meta := domain.ModelMetadata{
		ID:           FileIDFromPath(rel),
		Filename:     filepath.Base(rel),
		RelativePath: filepath.ToSlash(rel),
	}
	if parent := filepath.Dir(rel); parent != "." {
		meta.ModelName = filepath.Base(parent)
	}
	if info, err := os.Stat(filepath.Join(s.modelsDir, rel)); err == nil {
		meta.FileSize = info.Size()
		meta.UploadDate = info.ModTime()
	}
	return meta
}
