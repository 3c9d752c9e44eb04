package slopes

import (
	"math"

	"github.com/matzehuels/slopes/pkg/geom"
	"github.com/matzehuels/slopes/pkg/noise"
)

const (
	// NoiseRangePerRow is the width of noise space one row spans. Sampling
	// density changes fidelity, never the shape of the ridge.
	NoiseRangePerRow = 10.0

	// RowNoiseStep is the distance in noise space between adjacent rows.
	RowNoiseStep = 1.5

	// EvenRowDamping and OddRowDamping scale alternating rows.
	EvenRowDamping = 0.85
	OddRowDamping  = 1.0

	// EnvelopeExponent sharpens the bell so peaks gather mid-page.
	EnvelopeExponent = 4

	jitterScale = 0.5
)

// Bézier control points of the rising and falling halves of the envelope.
var (
	riseCurve = [4]geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(1, 1)}
	fallCurve = [4]geom.Point{geom.Pt(0, 1), geom.Pt(0, 1), geom.Pt(1, 0), geom.Pt(1, 0)}
)

// Jitter is a source of uniform random values in [0, 1).
// *math/rand/v2.Rand satisfies it.
type Jitter interface {
	Float64() float64
}

// Envelope turns noise samples into damped ridge heights.
type Envelope struct {
	Oracle noise.Oracle
}

// NewEnvelope returns an envelope sampling o.
func NewEnvelope(o noise.Oracle) Envelope {
	return Envelope{Oracle: o}
}

// Height returns the normalized ridge height of one sample, nominally in
// [-1, 1]. Exactly one jitter value is drawn per call regardless of
// perlinRatio, so a row's jitter stream stays aligned with its samples.
func (e Envelope) Height(sampleIndex, rowIndex, samplesPerRow int, perlinRatio float64, jitter Jitter) float64 {
	noiseX := float64(sampleIndex) / float64(samplesPerRow) * NoiseRangePerRow
	p := e.Oracle.Sample2D(noiseX, float64(rowIndex)*RowNoiseStep)

	rnd := (jitter.Float64() - 0.5) * jitterScale
	v := p*perlinRatio + rnd*(1-perlinRatio)
	v *= RowDamping(rowIndex)

	return v * Damping(sampleIndex, samplesPerRow)
}

// RowDamping returns the constant scale applied to every sample of a row.
func RowDamping(rowIndex int) float64 {
	if rowIndex%2 == 0 {
		return EvenRowDamping
	}
	return OddRowDamping
}

// Damping returns the envelope factor of a sample: 0 at the row ends, 1 in
// the middle.
func Damping(sampleIndex, samplesPerRow int) float64 {
	t := float64(sampleIndex) / float64(samplesPerRow)
	return math.Pow(Shape(t), EnvelopeExponent)
}

// Shape evaluates the undamped bell at t in [0, 1]: an ease-in-out rise over
// the first half and its mirror image over the second.
func Shape(t float64) float64 {
	if t < 0.5 {
		c := riseCurve
		return geom.EvalCubic(c[0], c[1], c[2], c[3], t*2).Y
	}
	c := fallCurve
	return geom.EvalCubic(c[0], c[1], c[2], c[3], (t-0.5)/0.5).Y
}
