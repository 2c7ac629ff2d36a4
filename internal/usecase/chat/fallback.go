package chat

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// fallbackVector builds a deterministic unit vector seeded from the
// utterance text. The same text always maps to the same vector, so a
// degraded search is at least stable across retries.
func fallbackVector(text string, dim int) []float32 {
	if dim <= 0 {
		dim = 1024
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec // not used for security

	v := make([]float32, dim)
	var norm float64
	for i := range v {
		f := rng.Float64()*2 - 1
		v[i] = float32(f)
		norm += f * f
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}
