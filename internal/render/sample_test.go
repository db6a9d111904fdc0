package render

import "testing"

func TestSampleIndicesEvenSpacing(t *testing.T) {
	t.Parallel()

	got := SampleIndices(120, 30)
	if len(got) != 30 {
		t.Fatalf("got %d indices, want 30", len(got))
	}
	if got[0] != 0 {
		t.Fatalf("first index = %d, want 0", got[0])
	}
	if got[len(got)-1] != 119 {
		t.Fatalf("last index = %d, want 119", got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("indices not strictly increasing at %d: %v", i, got)
		}
		gap := got[i] - got[i-1]
		if gap < 3 || gap > 5 {
			t.Fatalf("uneven spacing at %d (gap %d): %v", i, gap, got)
		}
	}
}

func TestSampleIndicesSmallSequences(t *testing.T) {
	t.Parallel()

	if got := SampleIndices(5, 30); len(got) != 5 {
		t.Fatalf("count above total: got %v, want identity of length 5", got)
	} else {
		for i, idx := range got {
			if idx != i {
				t.Fatalf("identity sampling broken: %v", got)
			}
		}
	}

	if got := SampleIndices(7, 1); len(got) != 1 || got[0] != 0 {
		t.Fatalf("single sample = %v, want [0]", got)
	}

	if got := SampleIndices(0, 10); got != nil {
		t.Fatalf("empty sequence sampled: %v", got)
	}
}

func TestSampleIndicesBounds(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ total, count int }{
		{2, 2}, {3, 2}, {100, 7}, {1000, 30}, {31, 30},
	} {
		got := SampleIndices(tc.total, tc.count)
		if len(got) != tc.count {
			t.Fatalf("total=%d count=%d: got %d indices", tc.total, tc.count, len(got))
		}
		if got[0] != 0 || got[len(got)-1] != tc.total-1 {
			t.Fatalf("total=%d count=%d: endpoints %d..%d", tc.total, tc.count, got[0], got[len(got)-1])
		}
		for _, idx := range got {
			if idx < 0 || idx >= tc.total {
				t.Fatalf("index %d out of range [0,%d)", idx, tc.total)
			}
		}
	}
}
