package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	slopesio "github.com/matzehuels/slopes/pkg/io"
	"github.com/matzehuels/slopes/pkg/pipeline"
)

// renderCommand creates the render command for saved drawings.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.DefaultOptions()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [drawing.json]",
		Short: "Render a saved drawing",
		Long: `Render a drawing saved with 'generate -f json' to other formats.

The geometry is read back unchanged; only sink options (stroke, background,
units, PNG scale, HPGL pen) apply. Outputs default to the input name with
each format's extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = pipeline.ParseFormats(formats)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json, hpgl (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")
	addRenderFlags(cmd.Flags(), &opts)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	d, err := slopesio.ImportJSON(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded drawing", "path", input, "polylines", len(d.Polylines))

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, c.Err, "Rendering...")
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError(c.Err, "Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(c.Out, artifacts, opts.Formats, output, input)
	if err != nil || output == stdoutPath {
		return err
	}

	printSuccess(c.Out, "Rendered %s", input)
	printStats(c.Out, d.Stats, cacheHit)
	for _, p := range paths {
		printFile(c.Out, p)
	}
	return nil
}
