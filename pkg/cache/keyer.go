package cache

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// DrawingKey returns the key for generated geometry.
	DrawingKey(opts DrawingKeyOpts) string

	// ArtifactKey returns the key for one rendered format of a drawing,
	// identified by the content hash of its JSON document.
	ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string
}

// DrawingKeyOpts lists every input that changes the generated polylines.
type DrawingKeyOpts struct {
	Noise               string  `json:"noise"`
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	VerticalMargin      float64 `json:"vertical_margin"`
	HorizontalMargin    float64 `json:"horizontal_margin"`
	DistanceBetweenRows float64 `json:"distance_between_rows"`
	PerlinRatio         float64 `json:"perlin_ratio"`
	SamplesPerRow       int     `json:"samples_per_row"`
	NumRows             int     `json:"num_rows"`
	RowHeightRatio      float64 `json:"row_height_ratio"`
	Seed                int64   `json:"seed"`
	JitterSeed          uint64  `json:"jitter_seed"`
}

// ArtifactKeyOpts lists the sink options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Background  string  `json:"background,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Precision   int     `json:"precision,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	PenScale    float64 `json:"pen_scale,omitempty"`
	Pen         int     `json:"pen,omitempty"`
}

// keyVersion is bumped whenever the generator output changes for identical
// inputs, which invalidates every drawing and artifact written before.
const keyVersion = "v1"

// DefaultKeyer produces unprefixed, versioned keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DrawingKey hashes all geometry inputs.
func (k *DefaultKeyer) DrawingKey(opts DrawingKeyOpts) string {
	return hashKey("drawing:"+keyVersion, opts)
}

// ArtifactKey hashes the drawing content together with the sink options.
func (k *DefaultKeyer) ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+keyVersion, drawingHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
