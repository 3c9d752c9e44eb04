package noise

import "github.com/aquilax/go-perlin"

// Perlin parameters: alpha is the weight of each octave in the sum, beta the
// frequency step between octaves and octaves the number of iterations.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// Perlin samples classic Perlin noise.
type Perlin struct {
	noise *perlin.Perlin
	seed  int64
}

// NewPerlin creates a Perlin oracle with the given seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{
		noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		seed:  seed,
	}
}

// Sample2D returns the noise value at (x, y), clamped to [-1, 1].
func (p *Perlin) Sample2D(x, y float64) float64 {
	return clamp(p.noise.Noise2D(x, y))
}

// Seed returns the seed the oracle was built with.
func (p *Perlin) Seed() int64 { return p.seed }
