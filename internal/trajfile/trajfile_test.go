package trajfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Yamier22/motion-library/internal/trajfile"
	"github.com/Yamier22/motion-library/internal/trajfile/trajtest"
)

func TestProbe2DNPY(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "walk.npy")
	trajtest.WriteNPY(t, path, []int{120, 12}, trajtest.Ramp(120, 12))

	info, err := trajfile.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.FrameCount == nil || *info.FrameCount != 120 {
		t.Fatalf("FrameCount = %v, want 120", info.FrameCount)
	}
	if info.NumJoints == nil || *info.NumJoints != 12 {
		t.Fatalf("NumJoints = %v, want 12", info.NumJoints)
	}
	if info.FrameRate != nil {
		t.Fatalf("FrameRate = %v, want nil for bare npy", *info.FrameRate)
	}
}

func TestProbe1DNPY(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scalar_series.npy")
	trajtest.WriteNPY(t, path, []int{40}, trajtest.Ramp(40, 1))

	info, err := trajfile.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.FrameCount == nil || *info.FrameCount != 40 {
		t.Fatalf("FrameCount = %v, want 40", info.FrameCount)
	}
	if info.NumJoints != nil {
		t.Fatalf("NumJoints = %v, want nil for 1-D array", *info.NumJoints)
	}
}

func TestProbeNPZWithFrameRate(t *testing.T) {
	t.Parallel()

	rate := 50.0
	path := filepath.Join(t.TempDir(), "run.npz")
	trajtest.WriteNPZ(t, path, []int{60, 7}, trajtest.Ramp(60, 7), &rate)

	info, err := trajfile.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.FrameCount == nil || *info.FrameCount != 60 {
		t.Fatalf("FrameCount = %v, want 60", info.FrameCount)
	}
	if info.NumJoints == nil || *info.NumJoints != 7 {
		t.Fatalf("NumJoints = %v, want 7", info.NumJoints)
	}
	if info.FrameRate == nil || *info.FrameRate != 50.0 {
		t.Fatalf("FrameRate = %v, want 50", info.FrameRate)
	}
}

func TestProbeNPZWithoutFrameRate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "idle.npz")
	trajtest.WriteNPZ(t, path, []int{10, 3}, trajtest.Ramp(10, 3), nil)

	info, err := trajfile.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.FrameRate != nil {
		t.Fatalf("FrameRate = %v, want nil when the bundle has no rate field", *info.FrameRate)
	}
}

func TestFramesRowMajorLayout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "walk.npy")
	trajtest.WriteNPY(t, path, []int{4, 3}, trajtest.Ramp(4, 3))

	frames, err := trajfile.Frames(path)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if got := frames[2][1]; got != 7 {
		t.Fatalf("frames[2][1] = %v, want 7", got)
	}
}

func TestFramesFortranOrder(t *testing.T) {
	t.Parallel()

	// Column-major payload of a 2x3 array holding rows [1 2 3] and [4 5 6]:
	// stored as 1,4,2,5,3,6.
	path := filepath.Join(t.TempDir(), "walk.npy")
	payload := trajtest.FortranNPYBytes(t, []int{2, 3}, []float64{1, 4, 2, 5, 3, 6})
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	frames, err := trajfile.Frames(path)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	want := [][]float64{{1, 2, 3}, {4, 5, 6}}
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, want %d", len(frames), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if frames[i][j] != want[i][j] {
				t.Fatalf("frames[%d][%d] = %v, want %v", i, j, frames[i][j], want[i][j])
			}
		}
	}
}

func TestFrames1D(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "series.npy")
	trajtest.WriteNPY(t, path, []int{5}, []float64{0, 1, 2, 3, 4})

	frames, err := trajfile.Frames(path)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 5 || len(frames[0]) != 1 {
		t.Fatalf("got %dx%d, want 5x1", len(frames), len(frames[0]))
	}
}

func TestFramesFromNPZ(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.npz")
	trajtest.WriteNPZ(t, path, []int{6, 2}, trajtest.Ramp(6, 2), nil)

	frames, err := trajfile.Frames(path)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 6 || len(frames[0]) != 2 {
		t.Fatalf("got %dx%d, want 6x2", len(frames), len(frames[0]))
	}
}

func TestFramesCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.npy")
	if err := os.WriteFile(path, []byte("not a numpy file"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := trajfile.Frames(path); err == nil {
		t.Fatal("Frames accepted a corrupt file")
	}
	if _, err := trajfile.Probe(path); err == nil {
		t.Fatal("Probe accepted a corrupt file")
	}
}

func TestFramesEmptySequence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.npy")
	trajtest.WriteNPY(t, path, []int{0}, nil)

	if _, err := trajfile.Frames(path); err == nil {
		t.Fatal("Frames accepted an empty pose sequence")
	}
}

func TestIsTrajectoryFile(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"walk.npy":  true,
		"walk.npz":  true,
		"WALK.NPY":  true,
		"walk.xml":  false,
		"walk.npyx": false,
		"walk":      false,
	}
	for name, want := range cases {
		if got := trajfile.IsTrajectoryFile(name); got != want {
			t.Fatalf("IsTrajectoryFile(%q) = %v, want %v", name, got, want)
		}
	}
}
