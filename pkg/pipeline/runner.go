package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/slopes/pkg/cache"
	slopesio "github.com/matzehuels/slopes/pkg/io"
	"github.com/matzehuels/slopes/pkg/observability"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means DefaultKeyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs generate → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.New()}
	logger := r.Logger.With("run", result.RunID.String()[:8])

	genStart := time.Now()
	d, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Drawing = d
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.GenerateHit = hit

	logger.Info("generated drawing",
		"polylines", d.Stats.Polylines,
		"points", d.Stats.Points,
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.renderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.DrawingHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates a drawing and reports whether it came
// from the cache. Non-deterministic configurations are never cached.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*slopes.Drawing, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	cacheable := opts.Config.Deterministic()
	key := r.Keyer.DrawingKey(opts.DrawingKeyOpts())

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := slopesio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "drawing")
				return d, true, nil
			}
			// A document that no longer decodes is regenerated and overwritten.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "type", "drawing", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "drawing")
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.NumRows, opts.SamplesPerRow)
	start := time.Now()
	d, err := Generate(ctx, opts)
	polylines := 0
	if d != nil {
		polylines = len(d.Polylines)
	}
	hooks.OnGenerateComplete(ctx, polylines, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		if data, err := encodeDrawing(d); err == nil {
			r.store(ctx, key, "drawing", data, cache.TTLDrawing)
		}
	} else {
		r.Logger.Debug("drawing not cached", "reason", "jitter drawn from entropy")
	}
	return d, false, nil
}

// Generate is GenerateWithCacheInfo without the cache hit flag.
func (r *Runner) Generate(ctx context.Context, opts Options) (*slopes.Drawing, error) {
	d, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return d, err
}

// RenderWithCacheInfo renders d in every requested format and reports
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *slopes.Drawing, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	artifacts, _, hit, err := r.renderWithCacheInfo(ctx, d, opts)
	return artifacts, hit, err
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, d *slopes.Drawing, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, d *slopes.Drawing, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	doc, err := encodeDrawing(d)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize drawing for cache key: %w", err)
	}
	hash := cache.Hash(doc)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, hash, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderDrawing(d, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)), "artifact", data, cache.TTLArtifact)
	}
	return rendered, hash, false, nil
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func encodeDrawing(d *slopes.Drawing) ([]byte, error) {
	var buf bytes.Buffer
	if err := slopesio.WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
