package render

import (
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/Yamier22/motion-library/internal/pkg/errors"
	"github.com/Yamier22/motion-library/internal/pkg/logger"
	"github.com/Yamier22/motion-library/internal/storage"
	"github.com/Yamier22/motion-library/internal/trajfile/trajtest"
)

// poseDOF matches testModelXML: one free joint plus two hinges.
const poseDOF = 9

func newTestGenerator(t *testing.T) (*Generator, *storage.Store) {
	t.Helper()
	dataDir := t.TempDir()
	store, err := storage.New(
		logger.NewNop(),
		filepath.Join(dataDir, "models"),
		filepath.Join(dataDir, "trajectories"),
		filepath.Join(dataDir, "thumbnails"),
	)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	return NewGenerator(logger.NewNop(), store, NewSoftwareEngine()), store
}

func writeModel(t *testing.T, store *storage.Store, rel string) {
	t.Helper()
	path := filepath.Join(store.ModelsDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(testModelXML), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePoses(t *testing.T, store *storage.Store, rel string, frames int) {
	t.Helper()
	path := filepath.Join(store.TrajectoriesDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	values := make([]float64, frames*poseDOF)
	for i := 0; i < frames; i++ {
		values[i*poseDOF+3] = 1 // identity quaternion
		values[i*poseDOF+7] = float64(i) * 0.02
	}
	trajtest.WriteNPY(t, path, []int{frames, poseDOF}, values)
}

func TestRenderModelWritesMirroredThumbnail(t *testing.T) {
	t.Parallel()
	g, store := newTestGenerator(t)
	writeModel(t, store, "humanoid/humanoid.xml")

	if err := g.RenderModel("humanoid/humanoid.xml", DefaultCamera()); err != nil {
		t.Fatalf("RenderModel: %v", err)
	}

	id := storage.FileID("humanoid/humanoid.xml")
	want := filepath.Join(store.ThumbnailDir(storage.ThumbnailKindModels), "humanoid", id+".png")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("thumbnail not at mirrored location %s: %v", want, err)
	}

	// The serving-side lookup must find what the generator wrote.
	got, err := store.ModelThumbnail(id)
	if err != nil {
		t.Fatalf("ModelThumbnail: %v", err)
	}
	if got != want {
		t.Fatalf("lookup = %q, want %q", got, want)
	}
}

func TestRenderModelMissingFile(t *testing.T) {
	t.Parallel()
	g, _ := newTestGenerator(t)

	if err := g.RenderModel("missing.xml", DefaultCamera()); err == nil {
		t.Fatal("RenderModel succeeded for a missing model")
	}
}

func TestRenderTrajectoryAnimatedThumbnail(t *testing.T) {
	t.Parallel()
	g, store := newTestGenerator(t)
	writeModel(t, store, "humanoid/humanoid.xml")
	writePoses(t, store, "locomotion/walk.npy", 120)

	if err := g.RenderTrajectory("locomotion/walk.npy", "humanoid/humanoid.xml", DefaultCamera()); err != nil {
		t.Fatalf("RenderTrajectory: %v", err)
	}

	id := storage.FileID("locomotion/walk.npy")
	path, err := store.TrajectoryThumbnail(id)
	if err != nil {
		t.Fatalf("TrajectoryThumbnail: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode animation: %v", err)
	}
	if len(anim.Image) != AnimationFrames {
		t.Fatalf("animation has %d frames, want %d", len(anim.Image), AnimationFrames)
	}
	if anim.LoopCount != 0 {
		t.Fatalf("LoopCount = %d, want 0 (infinite)", anim.LoopCount)
	}
	for _, d := range anim.Delay {
		if d != FrameDelay {
			t.Fatalf("frame delay = %d, want %d", d, FrameDelay)
		}
	}
}

func TestRenderTrajectoryShortSequenceUsesEveryFrame(t *testing.T) {
	t.Parallel()
	g, store := newTestGenerator(t)
	writeModel(t, store, "humanoid/humanoid.xml")
	writePoses(t, store, "short.npy", 5)

	if err := g.RenderTrajectory("short.npy", "humanoid/humanoid.xml", DefaultCamera()); err != nil {
		t.Fatalf("RenderTrajectory: %v", err)
	}

	path, err := store.TrajectoryThumbnail(storage.FileID("short.npy"))
	if err != nil {
		t.Fatalf("TrajectoryThumbnail: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode animation: %v", err)
	}
	if len(anim.Image) != 5 {
		t.Fatalf("animation has %d frames, want 5", len(anim.Image))
	}
}

func TestRenderTrajectoryPoseMismatch(t *testing.T) {
	t.Parallel()
	g, store := newTestGenerator(t)
	writeModel(t, store, "humanoid/humanoid.xml")
	trajtest.WriteNPY(t, filepath.Join(store.TrajectoriesDir(), "narrow.npy"), []int{10, 3}, trajtest.Ramp(10, 3))

	if err := g.RenderTrajectory("narrow.npy", "humanoid/humanoid.xml", DefaultCamera()); err == nil {
		t.Fatal("RenderTrajectory accepted a pose-width mismatch")
	}
}

func TestRenderTrajectoryFolderIsolatesFailures(t *testing.T) {
	t.Parallel()
	g, store := newTestGenerator(t)
	writeModel(t, store, "humanoid/humanoid.xml")
	writePoses(t, store, "locomotion/walk.npy", 40)
	writePoses(t, store, "locomotion/run.npy", 40)
	if err := os.WriteFile(filepath.Join(store.TrajectoriesDir(), "locomotion", "corrupt.npy"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, total, err := g.RenderTrajectoryFolder("locomotion", "humanoid/humanoid.xml", DefaultCamera())
	if err != nil {
		t.Fatalf("RenderTrajectoryFolder: %v", err)
	}
	if ok != 2 || total != 3 {
		t.Fatalf("summary = %d/%d, want 2/3", ok, total)
	}

	// The corrupt file's ID must have no thumbnail afterward.
	if _, err := store.TrajectoryThumbnail(storage.FileID("locomotion/corrupt.npy")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("corrupt file thumbnail err = %v, want ErrNotFound", err)
	}
	if _, err := store.TrajectoryThumbnail(storage.FileID("locomotion/walk.npy")); err != nil {
		t.Fatalf("healthy file thumbnail missing: %v", err)
	}
}

func TestRenderTrajectoryFolderMissing(t *testing.T) {
	t.Parallel()
	g, _ := newTestGenerator(t)

	if _, _, err := g.RenderTrajectoryFolder("nope", "humanoid/humanoid.xml", DefaultCamera()); err == nil {
		t.Fatal("RenderTrajectoryFolder accepted a missing folder")
	}
}
