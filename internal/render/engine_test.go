package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

const testModelXML = `<mujoco model="test-biped">
  <worldbody>
    <body name="torso" pos="0 0 1">
      <joint name="root" type="free"/>
      <geom type="sphere" size="0.1"/>
      <body name="thigh" pos="0 0 -0.4">
        <joint name="hip" type="hinge" axis="0 1 0"/>
        <body name="shin" pos="0 0 -0.4">
          <joint name="knee" type="hinge" axis="0 1 0"/>
        </body>
      </body>
    </body>
  </worldbody>
</mujoco>`

func writeTestModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biped.xml")
	if err := os.WriteFile(path, []byte(testModelXML), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func TestSoftwareEngineLoad(t *testing.T) {
	t.Parallel()

	model, err := NewSoftwareEngine().Load(writeTestModel(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer model.Close()

	// free (7) + two hinges (1 each)
	if got := model.DOF(); got != 9 {
		t.Fatalf("DOF = %d, want 9", got)
	}
	rest := model.RestPose()
	if len(rest) != 9 {
		t.Fatalf("RestPose length = %d, want 9", len(rest))
	}
	// Free-joint orientation defaults to the identity quaternion.
	if rest[3] != 1 {
		t.Fatalf("rest pose quaternion w = %v, want 1", rest[3])
	}
}

func TestSoftwareEngineLoadErrors(t *testing.T) {
	t.Parallel()

	eng := NewSoftwareEngine()
	if _, err := eng.Load(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.xml")
	if err := os.WriteFile(bad, []byte("<mujoco><worldbody/></mujoco>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Load(bad); err == nil {
		t.Fatal("Load accepted an empty worldbody")
	}
}

func TestSetPoseValidatesLength(t *testing.T) {
	t.Parallel()

	model, err := NewSoftwareEngine().Load(writeTestModel(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer model.Close()

	if err := model.SetPose([]float64{1, 2, 3}); err == nil {
		t.Fatal("SetPose accepted a wrong-length vector")
	}
	if err := model.SetPose(model.RestPose()); err != nil {
		t.Fatalf("SetPose rest pose: %v", err)
	}
}

func TestRenderProducesFrame(t *testing.T) {
	t.Parallel()

	model, err := NewSoftwareEngine().Load(writeTestModel(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer model.Close()

	img, err := model.Render(DefaultCamera(), 160, 160)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 160 || b.Dy() != 160 {
		t.Fatalf("frame bounds %v, want 160x160", b)
	}

	// The figure must actually appear: some pixel near the center differs
	// from the background.
	bg := img.At(0, 0)
	found := false
	for y := b.Dy() / 4; y < 3*b.Dy()/4 && !found; y++ {
		for x := b.Dx() / 4; x < 3*b.Dx()/4; x++ {
			if !sameColor(img.At(x, y), bg) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("rendered frame is blank")
	}
}

func TestRenderPoseChangesOutput(t *testing.T) {
	t.Parallel()

	model, err := NewSoftwareEngine().Load(writeTestModel(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer model.Close()

	first, err := model.Render(DefaultCamera(), 120, 120)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	pose := model.RestPose()
	pose[7] = 1.2 // bend the hip
	if err := model.SetPose(pose); err != nil {
		t.Fatalf("SetPose: %v", err)
	}
	second, err := model.Render(DefaultCamera(), 120, 120)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	diff := false
	for y := 0; y < 120 && !diff; y++ {
		for x := 0; x < 120; x++ {
			if !sameColor(first.At(x, y), second.At(x, y)) {
				diff = true
				break
			}
		}
	}
	if !diff {
		t.Fatal("posed render identical to rest render")
	}
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
