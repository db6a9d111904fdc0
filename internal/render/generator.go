package render

import (
	"fmt"
	"image"
	"image/color/palette"
	stddraw "image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/Yamier22/motion-library/internal/pkg/logger"
	"github.com/Yamier22/motion-library/internal/storage"
	"github.com/Yamier22/motion-library/internal/trajfile"
)

const (
	// ThumbnailSize is the edge length of the square preview images.
	ThumbnailSize = 160
	// supersample renders at a multiple of the output size and downscales,
	// which reads much better at 160px than direct rasterization.
	supersample = 2
	// AnimationFrames is the number of sampled poses in a trajectory
	// preview.
	AnimationFrames = 30
	// FrameDelay is the per-frame display duration in GIF units (10 ms).
	FrameDelay = 10
)

// renderState tracks one asset through the pipeline. Failures are terminal
// for that asset; there are no retries.
type renderState string

const (
	statePending   renderState = "pending"
	stateLoading   renderState = "loading"
	stateRendering renderState = "rendering"
	stateEncoding  renderState = "encoding"
	stateDone      renderState = "done"
	stateFailed    renderState = "failed"
)

// Generator is the offline thumbnail pipeline. It writes into the thumbnail
// tree the server reads from, keyed by the same FileID derivation, with no
// other coordination between the two processes.
type Generator struct {
	log    *logger.Logger
	store  *storage.Store
	engine Engine
}

func NewGenerator(log *logger.Logger, store *storage.Store, engine Engine) *Generator {
	return &Generator{
		log:    log.With("component", "generator"),
		store:  store,
		engine: engine,
	}
}

type renderJob struct {
	log   *logger.Logger
	state renderState
}

func (g *Generator) newJob(kind storage.ThumbnailKind, rel string) *renderJob {
	j := &renderJob{
		log:   g.log.With("kind", string(kind), "asset", filepath.ToSlash(rel)),
		state: statePending,
	}
	return j
}

func (j *renderJob) advance(next renderState) {
	j.state = next
	j.log.Debug("render state", "state", string(next))
}

func (j *renderJob) fail(err error) error {
	j.state = stateFailed
	j.log.Error("render failed", "error", err)
	return err
}

// RenderModel renders one still thumbnail for the model at modelRel (path
// relative to the models root, forward slashes) and writes it to the
// mirrored thumbnail location keyed by the model's ID.
func (g *Generator) RenderModel(modelRel string, cam Camera) error {
	job := g.newJob(storage.ThumbnailKindModels, modelRel)

	job.advance(stateLoading)
	model, err := g.engine.Load(filepath.Join(g.store.ModelsDir(), filepath.FromSlash(modelRel)))
	if err != nil {
		return job.fail(fmt.Errorf("load model %s: %w", modelRel, err))
	}
	defer model.Close()

	job.advance(stateRendering)
	if err := model.SetPose(model.RestPose()); err != nil {
		return job.fail(err)
	}
	frame, err := renderFrame(model, cam)
	if err != nil {
		return job.fail(fmt.Errorf("render model %s: %w", modelRel, err))
	}

	job.advance(stateEncoding)
	out, err := g.thumbnailPath(storage.ThumbnailKindModels, modelRel, ".png")
	if err != nil {
		return job.fail(err)
	}
	f, err := os.Create(out)
	if err != nil {
		return job.fail(fmt.Errorf("create thumbnail %s: %w", out, err))
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		return job.fail(fmt.Errorf("encode thumbnail %s: %w", out, err))
	}

	job.advance(stateDone)
	job.log.Info("model thumbnail written", "path", out)
	return nil
}

// RenderTrajectory renders a looping animated thumbnail for the trajectory
// at trajRel, posed on the model at modelRel. AnimationFrames poses are
// sampled evenly across the sequence by index and rendered under one fixed
// camera.
func (g *Generator) RenderTrajectory(trajRel, modelRel string, cam Camera) error {
	job := g.newJob(storage.ThumbnailKindTrajectories, trajRel)

	job.advance(stateLoading)
	model, err := g.engine.Load(filepath.Join(g.store.ModelsDir(), filepath.FromSlash(modelRel)))
	if err != nil {
		return job.fail(fmt.Errorf("load model %s: %w", modelRel, err))
	}
	defer model.Close()

	frames, err := trajfile.Frames(filepath.Join(g.store.TrajectoriesDir(), filepath.FromSlash(trajRel)))
	if err != nil {
		return job.fail(fmt.Errorf("load trajectory %s: %w", trajRel, err))
	}
	if len(frames) == 0 {
		return job.fail(fmt.Errorf("trajectory %s has an empty pose sequence", trajRel))
	}

	job.advance(stateRendering)
	indices := SampleIndices(len(frames), AnimationFrames)
	anim := &gif.GIF{LoopCount: 0}
	for _, idx := range indices {
		if err := model.SetPose(frames[idx]); err != nil {
			return job.fail(fmt.Errorf("trajectory %s frame %d: %w", trajRel, idx, err))
		}
		frame, err := renderFrame(model, cam)
		if err != nil {
			return job.fail(fmt.Errorf("render trajectory %s frame %d: %w", trajRel, idx, err))
		}
		paletted := image.NewPaletted(frame.Bounds(), palette.Plan9)
		stddraw.FloydSteinberg.Draw(paletted, frame.Bounds(), frame, image.Point{})
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, FrameDelay)
	}

	job.advance(stateEncoding)
	out, err := g.thumbnailPath(storage.ThumbnailKindTrajectories, trajRel, ".gif")
	if err != nil {
		return job.fail(err)
	}
	f, err := os.Create(out)
	if err != nil {
		return job.fail(fmt.Errorf("create thumbnail %s: %w", out, err))
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return job.fail(fmt.Errorf("encode thumbnail %s: %w", out, err))
	}

	job.advance(stateDone)
	job.log.Info("trajectory thumbnail written", "path", out, "frames", len(indices))
	return nil
}

// RenderTrajectoryFolder renders every trajectory file directly inside
// folderRel. One file's failure never aborts the rest; the returned counts
// feed the operator's ok/total summary.
func (g *Generator) RenderTrajectoryFolder(folderRel, modelRel string, cam Camera) (ok, total int, err error) {
	dir := filepath.Join(g.store.TrajectoriesDir(), filepath.FromSlash(folderRel))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("render: read trajectory folder %s: %w", folderRel, err)
	}

	var rels []string
	for _, e := range entries {
		if e.IsDir() || !trajfile.IsTrajectoryFile(e.Name()) {
			continue
		}
		rels = append(rels, filepath.ToSlash(filepath.Join(folderRel, e.Name())))
	}
	if len(rels) == 0 {
		g.log.Warn("no trajectory files in folder", "folder", folderRel)
		return 0, 0, nil
	}

	for _, rel := range rels {
		if g.RenderTrajectory(rel, modelRel, cam) == nil {
			ok++
		}
	}
	g.log.Info("folder render finished", "folder", folderRel, "ok", ok, "total", len(rels))
	return ok, len(rels), nil
}

// thumbnailPath computes the mirrored output location for an asset and
// creates its directory. The filename stem is the asset's FileID, derived
// from the same slash-normalized relative path the server hashes.
func (g *Generator) thumbnailPath(kind storage.ThumbnailKind, assetRel, ext string) (string, error) {
	id := storage.FileIDFromPath(assetRel)
	dir := g.store.ThumbnailDir(kind)
	if parent := filepath.Dir(filepath.FromSlash(assetRel)); parent != "." {
		dir = filepath.Join(dir, parent)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("render: create thumbnail dir %s: %w", dir, err)
	}
	return filepath.Join(dir, id+ext), nil
}

// renderFrame rasterizes at supersample resolution and downscales to the
// final thumbnail size.
func renderFrame(model Model, cam Camera) (image.Image, error) {
	big, err := model.Render(cam, ThumbnailSize*supersample, ThumbnailSize*supersample)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, ThumbnailSize, ThumbnailSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), xdraw.Src, nil)
	return dst, nil
}
