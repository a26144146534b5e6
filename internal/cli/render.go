package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/pipeline"
)

// renderCommand creates the render command, which goes from a family tree
// straight to output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lflags layoutFlags
		rflags renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [family.json|family.yaml]",
		Short: "Lay out and render a family tree in one step",
		Long: `Lay out and render a family tree in one step.

Equivalent to 'layout' followed by 'visualize'. Given a .layout.json file,
render skips the layout step.

Examples:
  kintree render family.yaml
  kintree render family.yaml -s radial --undirected -f svg,png
  kintree render family.json -s hierarchical -d LR -o tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if isLayoutFile(args[0]) {
				if err := rflags.apply(&opts); err != nil {
					return err
				}
				return c.runVisualize(cmd.Context(), args[0], opts, rflags)
			}
			opts, err := lflags.options()
			if err != nil {
				return err
			}
			if err := rflags.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, rflags)
		},
	}

	lflags.register(cmd)
	rflags.register(cmd)
	return cmd
}

// runRender runs the whole pipeline on a family tree.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	g, err := c.readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s layout...", opts.Strategy))
	spinner.Start()

	res, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(res.Artifacts, opts.Formats, outputBase(flags.output, input), flags.output); err != nil {
		return err
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.RankCount,
		res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact to <base>.<format>. A single format
// goes to output verbatim when one was given.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) error {
	printSuccess("Render complete")
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
