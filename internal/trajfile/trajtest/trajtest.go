// Package trajtest writes NumPy array fixtures for tests. The writer is
// deliberately independent of the decoding path under test.
package trajtest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"testing"
)

// NPYBytes encodes values as a little-endian float64 NPY v1.0 array with the
// given shape. A one-element shape slice produces a 1-D array.
func NPYBytes(t *testing.T, shape []int, values []float64) []byte {
	t.Helper()
	return npyBytes(t, shape, values, false)
}

// FortranNPYBytes is NPYBytes with fortran_order set; values are laid out
// column-major, the way numpy stores arrays saved via asfortranarray.
func FortranNPYBytes(t *testing.T, shape []int, values []float64) []byte {
	t.Helper()
	return npyBytes(t, shape, values, true)
}

func npyBytes(t *testing.T, shape []int, values []float64, fortran bool) []byte {
	t.Helper()

	n := 1
	for _, d := range shape {
		n *= d
	}
	if n != len(values) {
		t.Fatalf("trajtest: shape %v wants %d values, got %d", shape, n, len(values))
	}

	var shapeStr string
	switch len(shape) {
	case 1:
		shapeStr = fmt.Sprintf("(%d,)", shape[0])
	case 2:
		shapeStr = fmt.Sprintf("(%d, %d)", shape[0], shape[1])
	default:
		t.Fatalf("trajtest: unsupported rank %d", len(shape))
	}

	order := "False"
	if fortran {
		order = "True"
	}
	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': %s, 'shape': %s, }", order, shapeStr)
	// Total header size (magic + version + length field + text) must be a
	// multiple of 64, text terminated by newline.
	total := 10 + len(header) + 1
	pad := (64 - total%64) % 64
	header += string(bytes.Repeat([]byte{' '}, pad)) + "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(header))); err != nil {
		t.Fatalf("trajtest: write header length: %v", err)
	}
	buf.WriteString(header)
	for _, v := range values {
		var raw [8]byte
		binary.LittleEndian.PutUint64(raw[:], math.Float64bits(v))
		buf.Write(raw[:])
	}
	return buf.Bytes()
}

// WriteNPY writes an NPY file at path.
func WriteNPY(t *testing.T, path string, shape []int, values []float64) {
	t.Helper()
	if err := os.WriteFile(path, NPYBytes(t, shape, values), 0o644); err != nil {
		t.Fatalf("trajtest: write %s: %v", path, err)
	}
}

// WriteNPZ writes an NPZ bundle with a qpos member and, when frameRate is
// non-nil, a shape-(1,) frame_rate member.
func WriteNPZ(t *testing.T, path string, shape []int, values []float64, frameRate *float64) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("qpos.npy")
	if err != nil {
		t.Fatalf("trajtest: create qpos member: %v", err)
	}
	if _, err := w.Write(NPYBytes(t, shape, values)); err != nil {
		t.Fatalf("trajtest: write qpos member: %v", err)
	}
	if frameRate != nil {
		w, err := zw.Create("frame_rate.npy")
		if err != nil {
			t.Fatalf("trajtest: create frame_rate member: %v", err)
		}
		if _, err := w.Write(NPYBytes(t, []int{1}, []float64{*frameRate})); err != nil {
			t.Fatalf("trajtest: write frame_rate member: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("trajtest: close npz: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("trajtest: write %s: %v", path, err)
	}
}

// Ramp returns rows*cols sequential values, handy for asserting layout.
func Ramp(rows, cols int) []float64 {
	out := make([]float64, rows*cols)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
