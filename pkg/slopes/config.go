package slopes

import (
	"github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/geom"
	"github.com/matzehuels/slopes/pkg/noise"
)

// Default generation parameters.
const (
	DefaultWidth               = 1100.0
	DefaultHeight              = 850.0
	DefaultVerticalMargin      = 50.0
	DefaultHorizontalMargin    = 100.0
	DefaultDistanceBetweenRows = 10.0
	DefaultPerlinRatio         = 0.95
	DefaultSamplesPerRow       = 250
	DefaultNumRows             = 50
	DefaultRowHeightRatio      = 0.1
	DefaultRowAmplification    = 1.0
)

// Margins is the blank border kept on each side of the page.
type Margins struct {
	Vertical   float64 `json:"vertical" toml:"vertical"`
	Horizontal float64 `json:"horizontal" toml:"horizontal"`
}

// Config holds every parameter of a single generation run. A Config is a
// plain value; copying it is cheap and safe.
type Config struct {
	// Width and Height are the page size in output units.
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`

	Margins Margins `json:"margins" toml:"margins"`

	// DistanceBetweenRows is the vertical spacing between row baselines.
	DistanceBetweenRows float64 `json:"distance_between_rows" toml:"distance_between_rows"`

	// PerlinRatio blends smooth noise (1) with per-sample jitter (0).
	PerlinRatio float64 `json:"perlin_ratio" toml:"perlin_ratio"`

	SamplesPerRow  int     `json:"samples_per_row" toml:"samples_per_row"`
	NumRows        int     `json:"num_rows" toml:"num_rows"`
	RowHeightRatio float64 `json:"row_height_ratio" toml:"row_height_ratio"`

	// Seed seeds the noise oracle. Zero is a valid seed.
	Seed int64 `json:"seed" toml:"seed"`

	// JitterSeed seeds the per-row jitter streams. Zero draws jitter from
	// system entropy, which makes runs with PerlinRatio < 1 irreproducible.
	JitterSeed uint64 `json:"jitter_seed,omitempty" toml:"jitter_seed"`
}

// DefaultConfig returns a letter-landscape configuration with the defaults
// above.
func DefaultConfig() Config {
	return Config{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		Margins:             Margins{Vertical: DefaultVerticalMargin, Horizontal: DefaultHorizontalMargin},
		DistanceBetweenRows: DefaultDistanceBetweenRows,
		PerlinRatio:         DefaultPerlinRatio,
		SamplesPerRow:       DefaultSamplesPerRow,
		NumRows:             DefaultNumRows,
		RowHeightRatio:      DefaultRowHeightRatio,
		Seed:                noise.DefaultSeed,
	}
}

// WithDefaults returns a copy of c with unset resolution fields filled in.
// Page geometry is never defaulted; a zero width is a configuration error.
func (c Config) WithDefaults() Config {
	if c.SamplesPerRow == 0 {
		c.SamplesPerRow = DefaultSamplesPerRow
	}
	if c.NumRows == 0 {
		c.NumRows = DefaultNumRows
	}
	if c.RowHeightRatio == 0 {
		c.RowHeightRatio = DefaultRowHeightRatio
	}
	return c
}

// Validate checks that c describes a drawable page.
func (c Config) Validate() error {
	if c.SamplesPerRow <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "samples_per_row must be positive, got %d", c.SamplesPerRow)
	}
	if c.NumRows <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "num_rows must be positive, got %d", c.NumRows)
	}
	checks := []error{
		errors.ValidatePositive("width", c.Width),
		errors.ValidatePositive("height", c.Height),
		errors.ValidateNonNegative("margins.vertical", c.Margins.Vertical),
		errors.ValidateNonNegative("margins.horizontal", c.Margins.Horizontal),
		errors.ValidatePositive("distance_between_rows", c.DistanceBetweenRows),
		errors.ValidateRange("perlin_ratio", c.PerlinRatio, 0, 1),
		errors.ValidatePositive("row_height_ratio", c.RowHeightRatio),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if 2*c.Margins.Horizontal >= c.Width {
		return errors.New(errors.ErrCodeInvalidConfig,
			"horizontal margin %v leaves no room on a page %v wide", c.Margins.Horizontal, c.Width)
	}
	if 2*c.Margins.Vertical >= c.Height {
		return errors.New(errors.ErrCodeInvalidConfig,
			"vertical margin %v leaves no room on a page %v high", c.Margins.Vertical, c.Height)
	}
	return nil
}

// SampleSpacing returns the horizontal distance between adjacent samples.
func (c Config) SampleSpacing() float64 {
	return (c.Width - 2*c.Margins.Horizontal) / float64(c.SamplesPerRow)
}

// SampleX returns the x coordinate of sample i.
func (c Config) SampleX(i int) float64 {
	return float64(i)*c.SampleSpacing() + c.Margins.Horizontal
}

// RowHeight returns the peak height a row reaches at amplification 1.
func (c Config) RowHeight() float64 {
	return c.Height * c.RowHeightRatio
}

// RowOffset returns the baseline y of row r. Row 0 sits lowest on the page.
func (c Config) RowOffset(r int) float64 {
	return c.Height - 2*c.Margins.Vertical - float64(r)*c.DistanceBetweenRows
}

// Bounds returns the drawable area inside the margins.
func (c Config) Bounds() geom.Bounds {
	return geom.Inset(c.Width, c.Height, c.Margins.Horizontal, c.Margins.Vertical)
}

// Deterministic reports whether two runs with c produce identical output.
func (c Config) Deterministic() bool {
	return c.PerlinRatio == 1 || c.JitterSeed != 0
}
