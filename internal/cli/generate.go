package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slopes/pkg/pipeline"
)

// generateFlags holds the generate command's own flags.
type generateFlags struct {
	config      string
	output      string
	formats     string
	noCache     bool
	printConfig bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags
	opts := pipeline.DefaultOptions()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a mountain range drawing",
		Long: `Generate a mountain range drawing and write it in one or more formats.

Parameters come from the built-in defaults, then an optional TOML file
(--config), then explicit flags. Deterministic drawings (perlin ratio 1, or a
non-zero --jitter-seed) are cached locally, so re-rendering with a different
stroke or format skips generation.

Examples:
  slopes generate -f svg,hpgl -o range
  slopes generate --rows 80 --noise simplex --seed 7 -o range.png -f png
  slopes generate -c print.toml --print-config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.config != "" {
				base, err := pipeline.LoadOptionsFile(flags.config)
				if err != nil {
					return err
				}
				if err := overlayFlags(cmd.Flags(), &opts, base); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = pipeline.ParseFormats(flags.formats)
			}
			return c.runGenerate(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "TOML options file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json, hpgl (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even if cached")
	cmd.Flags().BoolVar(&flags.printConfig, "print-config", false, "print the effective options as TOML and exit")
	addDrawingFlags(cmd.Flags(), &opts)
	addRenderFlags(cmd.Flags(), &opts)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, flags generateFlags) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if flags.printConfig {
		return pipeline.EncodeOptions(c.Out, opts)
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, c.Err, "Generating...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Generated %d polylines", result.Drawing.Stats.Polylines))

	paths, err := writeArtifacts(c.Out, result.Artifacts, opts.Formats, flags.output, "")
	if err != nil {
		return err
	}
	if flags.output == stdoutPath {
		return nil
	}

	printSuccess(c.Out, "Generated %s", StyleNumber.Render(result.RunID.String()[:8]))
	printStats(c.Out, result.Drawing.Stats, result.CacheInfo.GenerateHit)
	for _, p := range paths {
		printFile(c.Out, p)
	}
	if !opts.Config.Deterministic() {
		printWarning(c.Out, "jitter drawn from entropy; pass --jitter-seed to reproduce this drawing")
	}
	return nil
}
