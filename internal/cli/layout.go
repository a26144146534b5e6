package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags       layoutFlags
		output      string
		noCache     bool
		all         bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "layout [family.json|family.yaml]",
		Short: "Compute a layout from a family tree",
		Long: `Compute a layout from a family tree.

The layout command reads a family tree (JSON or YAML) and places every person
with the chosen strategy. The output is a layout.json file (same format as
'render -f json') that can be rendered to SVG/PNG/PDF using the 'visualize'
command.

With --all, every strategy is computed concurrently and written to
<input>.<strategy>.layout.json. With --interactive, the strategy is picked
from a list.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				s, err := pickStrategy(flags.strategy)
				if err != nil {
					return err
				}
				if s == "" {
					printInfo("No strategy selected")
					return nil
				}
				flags.strategy = string(s)
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			if all {
				return c.runLayoutAll(cmd.Context(), args[0], opts, output, noCache)
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&all, "all", false, "compute every strategy")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the strategy interactively")
	cmd.MarkFlagsMutuallyExclusive("all", "interactive")

	return cmd
}

// runLayout loads the family tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := c.readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Strategy))
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", input) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(g.Nodes), len(g.Edges), l.RankCount(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// runLayoutAll computes every strategy and writes one file per strategy.
func (c *CLI) runLayoutAll(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := c.readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	strategies := runner.Engine.Strategies()
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %d layouts...", len(strategies)))
	spinner.Start()

	layouts, err := runner.ComputeAll(ctx, g, strategies, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layouts: %w", err)
	}
	spinner.Stop()
	prog.done("Computed layouts", "strategies", len(strategies))

	base := outputBase("", input)
	if output != "" {
		base = outputBase("", output)
	}

	printSuccess("Layouts complete")
	for _, s := range strategies {
		path := fmt.Sprintf("%s.%s.layout.json", base, s)
		if err := graph.WriteLayoutFile(layouts[s], path); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(g.Nodes), len(g.Edges), layouts[layout.StrategyHierarchical].RankCount(), false)

	return nil
}

// readGraph reads a family tree and warns about relationships that name
// unknown people; the layouts skip those.
func (c *CLI) readGraph(input string) (graph.Graph, error) {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("load family tree %s: %w", input, err)
	}
	if dangling := g.DanglingEdges(); len(dangling) > 0 {
		printWarning("%d relationships name unknown people and are ignored", len(dangling))
		for _, e := range dangling {
			c.Logger.Debug("dangling relationship", "source", e.Source, "target", e.Target)
		}
	}
	return g, nil
}
