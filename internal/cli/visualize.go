package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// renderFlags are the render options shared by visualize and render.
type renderFlags struct {
	formats  string
	output   string
	detailed bool
	scale    float64
	noCache  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show every data field in the boxes")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply copies the render flags onto opts and validates them.
func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.Detailed = f.detailed
	opts.Scale = f.scale
	return opts.ValidateForRender()
}

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or DOT. The layout contains all positioning
information, so this step is purely about drawing.

PNG and PDF output need rsvg-convert (librsvg) on the PATH.

Use 'render' as a shortcut to go directly from a family tree to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := flags.apply(&opts); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s layout...", l.Strategy))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifacts, opts.Formats, outputBase(flags.output, input), flags.output); err != nil {
		return err
	}
	printStats(len(l.Nodes), len(l.Edges), l.RankCount(), cacheHit)
	return nil
}
