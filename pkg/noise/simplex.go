package noise

import "github.com/ojrac/opensimplex-go"

// Simplex samples OpenSimplex noise. It has fewer directional artifacts than
// Perlin noise, which shows as less regular ridge spacing.
type Simplex struct {
	noise opensimplex.Noise
	seed  int64
}

// NewSimplex creates an OpenSimplex oracle with the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

// Sample2D returns the noise value at (x, y), clamped to [-1, 1].
func (s *Simplex) Sample2D(x, y float64) float64 {
	return clamp(s.noise.Eval2(x, y))
}

// Seed returns the seed the oracle was built with.
func (s *Simplex) Seed() int64 { return s.seed }
