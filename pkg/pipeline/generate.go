package pipeline

import (
	"context"

	"github.com/matzehuels/slopes/pkg/noise"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// Generate builds the noise oracle named by opts and runs the generator.
// It does not consult any cache; see [Runner.GenerateWithCacheInfo].
func Generate(ctx context.Context, opts Options) (*slopes.Drawing, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	oracle, err := noise.New(opts.NoiseKind(), opts.Seed)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers == 0 {
		workers = -1 // one per CPU
	}
	return slopes.Generate(ctx, opts.Config,
		slopes.WithNoise(oracle),
		slopes.WithLogger(opts.Logger),
		slopes.WithWorkers(workers),
	)
}
