// Package noise provides the deterministic 2D noise oracles that drive the
// ridge heights of a drawing.
//
// An [Oracle] is constructed once with an explicit seed and then queried any
// number of times, from any number of goroutines. Nothing in this package
// touches global random state, so two oracles built from the same kind and
// seed always return the same samples.
//
// Two implementations are available:
//
//   - [KindPerlin]: classic Perlin noise (github.com/aquilax/go-perlin), the default
//   - [KindSimplex]: OpenSimplex noise (github.com/ojrac/opensimplex-go)
//
// Use [New] to build an oracle from its kind name, or [Func] to wrap a plain
// function in tests.
package noise

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/slopes/pkg/errors"
)

// Oracle is a seeded, deterministic 2D noise function.
//
// Sample2D returns a value nominally in [-1, 1]. Implementations must be
// safe for concurrent use.
type Oracle interface {
	Sample2D(x, y float64) float64
	Seed() int64
}

// Kind names a noise implementation.
type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

func (k Kind) String() string { return string(k) }

// DefaultKind is used when no kind is configured.
const DefaultKind = KindPerlin

// DefaultSeed is the seed drawings use when none is configured.
const DefaultSeed int64 = 20

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindPerlin, KindSimplex}
}

// ParseKind converts a user-supplied name to a Kind. Matching ignores case
// and surrounding whitespace; the empty string selects [DefaultKind].
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultKind, nil
	}
	k := Kind(s)
	if !slices.Contains(Kinds(), k) {
		return "", errors.New(errors.ErrCodeInvalidNoise, "unknown noise %q (valid: %s)", s, kindList())
	}
	return k, nil
}

func kindList() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// New builds the oracle of the given kind, seeded with seed.
func New(kind Kind, seed int64) (Oracle, error) {
	switch kind {
	case KindPerlin, "":
		return NewPerlin(seed), nil
	case KindSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidNoise, "unknown noise %q (valid: %s)", kind, kindList())
	}
}

// Func adapts an ordinary function to the Oracle interface. Its Seed is 0.
type Func func(x, y float64) float64

// Sample2D calls f(x, y).
func (f Func) Sample2D(x, y float64) float64 { return f(x, y) }

// Seed returns 0.
func (f Func) Seed() int64 { return 0 }

// Constant returns an oracle that always samples v.
func Constant(v float64) Oracle {
	return Func(func(float64, float64) float64 { return v })
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return max(-1, min(1, v))
}

// Describe returns a short human-readable description of an oracle.
func Describe(o Oracle) string {
	switch o.(type) {
	case *Perlin:
		return fmt.Sprintf("perlin(seed=%d)", o.Seed())
	case *Simplex:
		return fmt.Sprintf("simplex(seed=%d)", o.Seed())
	default:
		return fmt.Sprintf("custom(seed=%d)", o.Seed())
	}
}
