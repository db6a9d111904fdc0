package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Yamier22/motion-library/internal/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dataDir := t.TempDir()
	s, err := New(
		logger.NewNop(),
		filepath.Join(dataDir, "models"),
		filepath.Join(dataDir, "trajectories"),
		filepath.Join(dataDir, "thumbnails"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
