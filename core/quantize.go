package core

import "math"

// quantizeScale maps the clamped float range [-1, 1] onto [-127, 127].
const quantizeScale = 127.0

// QuantizeEmbedding converts a float embedding vector into the int8
// representation stored in the vector index. Each component is clamped to
// [-1, 1], scaled by 127 and rounded half-to-even, matching the rounding the
// stored corpus was produced with. Document vectors at ingestion time and
// query vectors at search time MUST both go through this function; any
// divergence silently degrades similarity ordering.
func QuantizeEmbedding(vec []float32) []int8 {
	out := make([]int8, len(vec))
	for i, v := range vec {
		f := float64(v)
		if f > 1.0 {
			f = 1.0
		} else if f < -1.0 {
			f = -1.0
		}
		out[i] = int8(math.RoundToEven(f * quantizeScale))
	}
	return out
}
