package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slopes/internal/server"
	"github.com/matzehuels/slopes/pkg/buildinfo"
	"github.com/matzehuels/slopes/pkg/cache"
	"github.com/matzehuels/slopes/pkg/observability"
	"github.com/matzehuels/slopes/pkg/pipeline"
)

type serveFlags struct {
	addr        string
	redis       string
	redisPrefix string
	origins     string
	noCache     bool
	timeout     time.Duration
	maxRows     int
	maxSamples  int
	maxPixels   int
	workers     int
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve drawings over HTTP",
		Long: `Serve drawings over HTTP.

Drawings are cached in Redis when --redis is given (host:port or a redis://
URL), otherwise in the local cache directory. --redis-prefix namespaces the
keys so several deployments can share one Redis.

Endpoints:
  GET  /healthz
  GET  /v1/drawing?rows=40&seed=7       drawing document (JSON)
  GET  /v1/drawing.svg?rows=40&seed=7   svg, png, pdf, json or hpgl
  POST /v1/drawing                      JSON options, JSON result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&flags.redis, "redis", "", "Redis address for the shared cache")
	cmd.Flags().StringVar(&flags.redisPrefix, "redis-prefix", "", "key prefix in the shared cache")
	cmd.Flags().StringVar(&flags.origins, "cors-origins", "", "allowed CORS origins (comma-separated, default any)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().IntVar(&flags.maxRows, "max-rows", server.DefaultMaxRows, "largest row count a request may ask for")
	cmd.Flags().IntVar(&flags.maxSamples, "max-samples", server.DefaultMaxSamples, "largest samples per row a request may ask for")
	cmd.Flags().IntVar(&flags.maxPixels, "max-pixels", server.DefaultMaxPixels, "largest PNG, in pixels, a request may ask for")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "generator goroutines per request (0 = one per CPU)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	runner, backend, err := c.newServeRunner(ctx, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	observability.NewLogHooks(c.Logger).Install()
	defer observability.Reset()

	srv := server.New(runner, server.Config{
		AllowedOrigins: splitList(flags.origins),
		Timeout:        flags.timeout,
		MaxRows:        flags.maxRows,
		MaxSamples:     flags.maxSamples,
		MaxPixels:      flags.maxPixels,
		Workers:        flags.workers,
		Logger:         c.Logger,
	})

	fmt.Fprintln(c.Out, StyleTitle.Render(appName+" "+buildinfo.Resolve().Version))
	printInfo(c.Out, "Serving on %s", StyleLink.Render(listenURL(flags.addr)))
	printKeyValue(c.Out, "cache", backend)
	printKeyValue(c.Out, "timeout", flags.timeout.String())

	if err := srv.ListenAndServe(ctx, flags.addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	printSuccess(c.Out, "Server stopped")
	return nil
}

// newServeRunner picks the cache backend and describes it for display.
func (c *CLI) newServeRunner(ctx context.Context, flags serveFlags) (*pipeline.Runner, string, error) {
	if flags.noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), "disabled", nil
	}
	if flags.redis == "" {
		runner, err := c.newRunner(false)
		if err != nil {
			return nil, "", err
		}
		backend := "none"
		if fc, ok := runner.Cache.(*cache.FileCache); ok {
			backend = fc.Dir()
		}
		return runner, backend, nil
	}

	rc, err := cache.NewRedisCache(ctx, flags.redis)
	if err != nil {
		return nil, "", fmt.Errorf("connect to redis: %w", err)
	}
	var keyer cache.Keyer
	backend := "redis " + flags.redis
	if flags.redisPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, flags.redisPrefix)
		backend += " (prefix " + flags.redisPrefix + ")"
	}
	return pipeline.NewRunner(rc, keyer, c.Logger), backend, nil
}

// listenURL turns a listen address into a clickable URL.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
