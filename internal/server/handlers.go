package server

import (
	"context"
	"math"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/matzehuels/slopes/pkg/buildinfo"
	"github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/pipeline"
	"github.com/matzehuels/slopes/pkg/render/sink"
	"github.com/matzehuels/slopes/pkg/slopes"
)

const maxBodyBytes = 1 << 20

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

// DrawingResponse is the body of POST /v1/drawing. Artifacts are base64
// encoded by encoding/json.
type DrawingResponse struct {
	RunID         string            `json:"run_id"`
	DrawingHash   string            `json:"drawing_hash"`
	Deterministic bool              `json:"deterministic"`
	Config        slopes.Config     `json:"config"`
	Stats         slopes.Stats      `json:"stats"`
	Cache         CacheStatus       `json:"cache"`
	Timings       Timings           `json:"timings"`
	Artifacts     map[string][]byte `json:"artifacts"`
}

// CacheStatus reports which pipeline stages were served from cache.
type CacheStatus struct {
	Drawing   bool `json:"drawing"`
	Artifacts bool `json:"artifacts"`
}

// Timings are stage durations in milliseconds.
type Timings struct {
	GenerateMS float64 `json:"generate_ms"`
	RenderMS   float64 `json:"render_ms"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, HealthResponse{Status: "ok", Info: buildinfo.Resolve()})
}

// handleGetDrawing serves the drawing document for the query parameters.
func (s *Server) handleGetDrawing(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatJSON)
}

// handleGetArtifact serves a single rendered format.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		renderError(w, r, s.logger, err)
		return
	}
	s.serveArtifact(w, r, format)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format string) {
	opts, err := parseQuery(r.URL.Query())
	if err != nil {
		renderError(w, r, s.logger, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.execute(r.Context(), opts)
	if err != nil {
		renderError(w, r, s.logger, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set(RunIDHeader, result.RunID.String())
	h.Set(DrawingHashHeader, result.DrawingHash)
	h.Set(CacheHeader, cacheHeader(result.CacheInfo))
	if result.Drawing.Config.Deterministic() {
		h.Set("Cache-Control", "public, max-age=86400")
	} else {
		h.Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handlePostDrawing runs the pipeline for a JSON options body. Fields left
// out of the body keep their defaults.
func (s *Server) handlePostDrawing(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.DefaultOptions()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, &opts); err != nil {
		renderError(w, r, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}

	result, err := s.execute(r.Context(), opts)
	if err != nil {
		renderError(w, r, s.logger, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, DrawingResponse{
		RunID:         result.RunID.String(),
		DrawingHash:   result.DrawingHash,
		Deterministic: result.Drawing.Config.Deterministic(),
		Config:        result.Drawing.Config,
		Stats:         result.Drawing.Stats,
		Cache: CacheStatus{
			Drawing:   result.CacheInfo.GenerateHit,
			Artifacts: result.CacheInfo.RenderHit,
		},
		Timings: Timings{
			GenerateMS: float64(result.Stats.GenerateTime.Microseconds()) / 1000,
			RenderMS:   float64(result.Stats.RenderTime.Microseconds()) / 1000,
		},
		Artifacts: result.Artifacts,
	})
}

// execute checks the request limits and runs the pipeline under the
// request timeout.
func (s *Server) execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	if err := s.checkLimits(opts); err != nil {
		return nil, err
	}
	opts.Workers = s.cfg.Workers

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return s.runner.Execute(ctx, opts)
}

func (s *Server) checkLimits(opts pipeline.Options) error {
	if opts.NumRows > s.cfg.MaxRows {
		return errors.New(errors.ErrCodeInvalidInput, "rows %d exceeds the limit of %d", opts.NumRows, s.cfg.MaxRows)
	}
	if opts.SamplesPerRow > s.cfg.MaxSamples {
		return errors.New(errors.ErrCodeInvalidInput, "samples %d exceeds the limit of %d", opts.SamplesPerRow, s.cfg.MaxSamples)
	}
	if !slices.Contains(opts.Formats, pipeline.FormatPNG) {
		return nil
	}
	width, height, scale := opts.Width, opts.Height, opts.Scale
	if width == 0 && height == 0 {
		width, height = slopes.DefaultWidth, slopes.DefaultHeight
	}
	if scale == 0 {
		scale = sink.DefaultPNGScale
	}
	if px := sink.PNGPixels(width, height, scale); math.IsNaN(px) || px > float64(s.cfg.MaxPixels) {
		return errors.New(errors.ErrCodeInvalidInput, "png of %.0f pixels exceeds the limit of %d", px, s.cfg.MaxPixels)
	}
	return nil
}

func cacheHeader(ci pipeline.CacheInfo) string {
	switch {
	case ci.RenderHit:
		return "hit"
	case ci.GenerateHit:
		return "partial"
	default:
		return "miss"
	}
}
