package render

import "math"

// SampleIndices picks count frame indices evenly spaced across [0, total-1]
// inclusive, always keeping the first and last frame. Sampling is by index,
// not by interpolating pose values. When count >= total every frame is used.
func SampleIndices(total, count int) []int {
	if total <= 0 || count <= 0 {
		return nil
	}
	if count >= total {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if count == 1 {
		return []int{0}
	}
	out := make([]int, count)
	step := float64(total-1) / float64(count-1)
	for i := range out {
		out[i] = int(math.Round(float64(i) * step))
	}
	return out
}
