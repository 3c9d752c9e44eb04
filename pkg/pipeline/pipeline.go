// Package pipeline runs the generate → render pipeline behind the CLI and
// the HTTP API.
//
// Both entry points build an [Options] value, hand it to a [Runner] and
// receive a [Result] holding the drawing and one artifact per requested
// format. Centralizing the stages here keeps defaults, validation and
// caching identical across entry points.
//
// # Stages
//
//  1. Generate: sample, occlude, clip and group the mountain rows
//  2. Render: write the drawing through each requested sink
//
// Deterministic drawings are cached by their parameters; artifacts are
// cached by drawing content plus sink options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "hpgl"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/slopes/pkg/cache"
	"github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/noise"
	"github.com/matzehuels/slopes/pkg/render/sink"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatHPGL = "hpgl"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatHPGL: true,
}

// ValidUnits are the SVG length units accepted for width and height.
// The empty unit leaves the SVG size in user units.
var ValidUnits = map[string]bool{
	"":   true,
	"px": true,
	"pt": true,
	"mm": true,
	"cm": true,
	"in": true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatHPGL: "application/vnd.hp-hpgl",
}

// Options contains all configuration for one pipeline run. The embedded
// drawing configuration is flattened in both JSON and TOML.
type Options struct {
	slopes.Config

	// Noise selects the oracle: "perlin" (default) or "simplex".
	Noise string `json:"noise,omitempty" toml:"noise"`

	// Workers bounds the generator's row goroutines. Zero means one per CPU.
	Workers int `json:"-" toml:"workers"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Stroke      string   `json:"stroke,omitempty" toml:"stroke"`
	StrokeWidth float64  `json:"stroke_width,omitempty" toml:"stroke_width"`
	Background  string   `json:"background,omitempty" toml:"background"`
	Unit        string   `json:"unit,omitempty" toml:"unit"`
	Precision   int      `json:"precision,omitempty" toml:"precision"` // 0 keeps the sink default
	Scale       float64  `json:"scale,omitempty" toml:"scale"`         // PNG
	PenScale    float64  `json:"pen_scale,omitempty" toml:"pen_scale"` // HPGL
	Pen         int      `json:"pen,omitempty" toml:"pen"`             // HPGL

	// Refresh bypasses cached drawings and artifacts.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	Logger *log.Logger `json:"-" toml:"-"`

	validated bool
}

// DefaultOptions returns the stock drawing rendered as SVG.
func DefaultOptions() Options {
	return Options{
		Config:  slopes.DefaultConfig(),
		Noise:   string(noise.DefaultKind),
		Formats: []string{FormatSVG},
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID uuid.UUID

	Drawing *slopes.Drawing

	// DrawingHash is the content hash of the drawing's JSON document.
	DrawingHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline timing.
type Stats struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // drawing came from cache
	RenderHit   bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, formatList())
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNoise checks that a noise kind is known.
func ValidateNoise(kind string) error {
	_, err := noise.ParseKind(kind)
	return err
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates while keeping order.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func formatList() string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// ValidateAndSetDefaults checks every option and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults fills the drawing configuration. An entirely zero
// configuration becomes [slopes.DefaultConfig].
func (o *Options) SetGenerateDefaults() {
	if o.Config == (slopes.Config{}) {
		o.Config = slopes.DefaultConfig()
	}
	o.Config = o.Config.WithDefaults()
	if o.Noise == "" {
		o.Noise = string(noise.DefaultKind)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGenerate validates and sets defaults for generation.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	kind, err := noise.ParseKind(o.Noise)
	if err != nil {
		return err
	}
	o.Noise = string(kind)
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", o.Workers)
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Stroke == "" {
		o.Stroke = sink.DefaultStroke
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = sink.DefaultStrokeWidth
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultPNGScale
	}
	if o.PenScale == 0 {
		o.PenScale = sink.DefaultHPGLScale
	}
	if o.Pen == 0 {
		o.Pen = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !ValidUnits[o.Unit] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid unit: %q (must be one of: px, pt, mm, cm, in)", o.Unit)
	}
	if o.Precision < 0 || o.Precision > 12 {
		return errors.New(errors.ErrCodeInvalidInput, "precision must be in [0, 12], got %d", o.Precision)
	}
	if o.Pen < 1 || o.Pen > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "pen must be in [1, 8], got %d", o.Pen)
	}
	checks := []error{
		errors.ValidateColor("stroke", o.Stroke),
		errors.ValidateColor("background", o.Background),
		errors.ValidatePositive("stroke_width", o.StrokeWidth),
		errors.ValidatePositive("scale", o.Scale),
		errors.ValidatePositive("pen_scale", o.PenScale),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if slices.Contains(o.Formats, FormatPNG) {
		return CheckRaster(o.Width, o.Height, o.Scale)
	}
	return nil
}

// CheckRaster rejects PNG renders larger than [sink.MaxPNGPixels].
func CheckRaster(width, height, scale float64) error {
	if px := sink.PNGPixels(width, height, scale); px > sink.MaxPNGPixels {
		return errors.New(errors.ErrCodeInvalidInput,
			"png of %.0f pixels exceeds the limit of %d; lower the scale or page size", px, sink.MaxPNGPixels)
	}
	return nil
}

// NoiseKind returns the parsed noise kind, falling back to the default for
// unknown names. Call it after validation.
func (o *Options) NoiseKind() noise.Kind {
	kind, err := noise.ParseKind(o.Noise)
	if err != nil {
		return noise.DefaultKind
	}
	return kind
}

// DrawingKeyOpts returns cache key options for generation.
func (o *Options) DrawingKeyOpts() cache.DrawingKeyOpts {
	c := o.Config
	return cache.DrawingKeyOpts{
		Noise:               string(o.NoiseKind()),
		Width:               c.Width,
		Height:              c.Height,
		VerticalMargin:      c.Margins.Vertical,
		HorizontalMargin:    c.Margins.Horizontal,
		DistanceBetweenRows: c.DistanceBetweenRows,
		PerlinRatio:         c.PerlinRatio,
		SamplesPerRow:       c.SamplesPerRow,
		NumRows:             c.NumRows,
		RowHeightRatio:      c.RowHeightRatio,
		Seed:                c.Seed,
		JitterSeed:          c.JitterSeed,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Options that do not affect the format are left zero so unrelated flags
// do not fragment the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Stroke, k.StrokeWidth, k.Background = o.Stroke, o.StrokeWidth, o.Background
		k.Unit, k.Precision = o.Unit, o.Precision
	case FormatPNG:
		k.Stroke, k.StrokeWidth, k.Background = o.Stroke, o.StrokeWidth, o.Background
		k.Scale = o.Scale
	case FormatHPGL:
		k.PenScale, k.Pen = o.PenScale, o.Pen
	}
	return k
}
