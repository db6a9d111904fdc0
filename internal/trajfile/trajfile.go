// Package trajfile decodes recorded motion trajectories stored as NumPy
// array files. Two layouts are accepted: a bare .npy array (2-D frames x
// joints, or 1-D frames), and a .npz bundle whose pose sequence lives under
// the conventional member name "qpos" with an optional scalar frame rate.
package trajfile

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio"
)

const (
	poseMember      = "qpos"
	frameRateMember = "frame_rate"
	// Some exporters spell the rate field without the underscore.
	frameRateMemberAlt = "framerate"
)

// Info is header-derived trajectory metadata. Fields stay nil when the file
// does not carry them; a frame rate is never guessed.
type Info struct {
	FrameCount *int
	FrameRate  *float64
	NumJoints  *int
}

// IsTrajectoryFile reports whether the filename has an accepted extension.
func IsTrajectoryFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".npy", ".npz":
		return true
	}
	return false
}

// Probe reads array headers only and returns the trajectory metadata.
func Probe(path string) (Info, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		return probeNPY(path)
	case ".npz":
		return probeNPZ(path)
	}
	return Info{}, fmt.Errorf("trajfile: unsupported extension %q", filepath.Ext(path))
}

func probeNPY(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("trajfile: open %s: %w", path, err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return Info{}, fmt.Errorf("trajfile: read npy header %s: %w", path, err)
	}
	return infoFromShape(r.Header.Descr.Shape), nil
}

func probeNPZ(path string) (Info, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Info{}, fmt.Errorf("trajfile: open npz %s: %w", path, err)
	}
	defer zr.Close()

	var info Info
	pose := findMember(&zr.Reader, poseMember)
	if pose == nil {
		return Info{}, fmt.Errorf("trajfile: npz %s has no %q member", path, poseMember)
	}
	shape, err := memberShape(pose)
	if err != nil {
		return Info{}, err
	}
	info = infoFromShape(shape)

	rateFile := findMember(&zr.Reader, frameRateMember)
	if rateFile == nil {
		rateFile = findMember(&zr.Reader, frameRateMemberAlt)
	}
	if rateFile != nil {
		rate, err := memberScalar(rateFile)
		if err != nil {
			return Info{}, err
		}
		info.FrameRate = &rate
	}
	return info, nil
}

// Frames decodes the full pose sequence as frames x joints. A 1-D array
// yields one value per frame. The sequence must be non-empty.
func Frames(path string) ([][]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("trajfile: open %s: %w", path, err)
		}
		defer f.Close()
		return readFrames(f, path)
	case ".npz":
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("trajfile: open npz %s: %w", path, err)
		}
		defer zr.Close()
		pose := findMember(&zr.Reader, poseMember)
		if pose == nil {
			return nil, fmt.Errorf("trajfile: npz %s has no %q member", path, poseMember)
		}
		rc, err := pose.Open()
		if err != nil {
			return nil, fmt.Errorf("trajfile: open npz member %s: %w", pose.Name, err)
		}
		defer rc.Close()
		return readFrames(rc, path)
	}
	return nil, fmt.Errorf("trajfile: unsupported extension %q", filepath.Ext(path))
}

func readFrames(r io.Reader, path string) ([][]float64, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("trajfile: read npy header %s: %w", path, err)
	}
	shape := nr.Header.Descr.Shape
	if len(shape) == 0 || len(shape) > 2 {
		return nil, fmt.Errorf("trajfile: %s: pose array must be 1-D or 2-D, got rank %d", path, len(shape))
	}
	raw, err := readFloats(nr)
	if err != nil {
		return nil, fmt.Errorf("trajfile: %s: %w", path, err)
	}

	rows := shape[0]
	cols := 1
	if len(shape) == 2 {
		cols = shape[1]
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("trajfile: %s: empty pose sequence", path)
	}
	if len(raw) != rows*cols {
		return nil, fmt.Errorf("trajfile: %s: payload has %d values, shape wants %d", path, len(raw), rows*cols)
	}

	frames := make([][]float64, rows)
	fortran := nr.Header.Descr.Fortran && len(shape) == 2
	for i := 0; i < rows; i++ {
		frame := make([]float64, cols)
		for j := 0; j < cols; j++ {
			if fortran {
				frame[j] = raw[j*rows+i]
			} else {
				frame[j] = raw[i*cols+j]
			}
		}
		frames[i] = frame
	}
	return frames, nil
}

// readFloats reads the array payload as float64 regardless of the stored
// numeric dtype.
func readFloats(r *npyio.Reader) ([]float64, error) {
	ty := r.Header.Descr.Type
	switch {
	case strings.HasSuffix(ty, "f8"):
		var data []float64
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		return data, nil
	case strings.HasSuffix(ty, "f4"):
		var data []float32
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case strings.HasSuffix(ty, "i8"):
		var data []int64
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case strings.HasSuffix(ty, "i4"):
		var data []int32
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported dtype %q", ty)
}

func infoFromShape(shape []int) Info {
	var info Info
	switch len(shape) {
	case 1:
		n := shape[0]
		info.FrameCount = &n
	case 2:
		n, j := shape[0], shape[1]
		info.FrameCount = &n
		info.NumJoints = &j
	}
	return info
}

func findMember(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if strings.TrimSuffix(f.Name, ".npy") == name {
			return f
		}
	}
	return nil
}

func memberShape(f *zip.File) ([]int, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("trajfile: open npz member %s: %w", f.Name, err)
	}
	defer rc.Close()
	nr, err := npyio.NewReader(rc)
	if err != nil {
		return nil, fmt.Errorf("trajfile: read npz member %s: %w", f.Name, err)
	}
	return nr.Header.Descr.Shape, nil
}

func memberScalar(f *zip.File) (float64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("trajfile: open npz member %s: %w", f.Name, err)
	}
	defer rc.Close()
	nr, err := npyio.NewReader(rc)
	if err != nil {
		return 0, fmt.Errorf("trajfile: read npz member %s: %w", f.Name, err)
	}
	// np.savez stores python floats as 0-d arrays; exporters sometimes use
	// shape-(1,) instead.
	if len(nr.Header.Descr.Shape) == 0 {
		var v float64
		if err := nr.Read(&v); err != nil {
			return 0, fmt.Errorf("trajfile: npz member %s: %w", f.Name, err)
		}
		return v, nil
	}
	vals, err := readFloats(nr)
	if err != nil {
		return 0, fmt.Errorf("trajfile: npz member %s: %w", f.Name, err)
	}
	if len(vals) != 1 {
		return 0, fmt.Errorf("trajfile: npz member %s: expected scalar, got %d values", f.Name, len(vals))
	}
	return vals[0], nil
}
