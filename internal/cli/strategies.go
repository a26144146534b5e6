package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/layout"
)

// strategyInfo describes a strategy for listings and the picker.
var strategyInfo = map[layout.Strategy]string{
	layout.StrategyHierarchical: "generations in ranks, parents above children",
	layout.StrategyCircular:     "everyone evenly spaced on one circle",
	layout.StrategyGrid:         "near-square grid in input order",
	layout.StrategyRadial:       "rings of relatives around the first person",
}

func describeStrategy(s layout.Strategy) string {
	if d, ok := strategyInfo[s]; ok {
		return d
	}
	return "custom strategy"
}

// strategyParams lists the config values a strategy reads.
func strategyParams(s layout.Strategy, cfg layout.Config) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	switch s {
	case layout.StrategyHierarchical:
		return fmt.Sprintf("node_sep=%s rank_sep=%s passes=%d", f(cfg.NodeSep), f(cfg.RankSep), cfg.OrderingPasses)
	case layout.StrategyCircular:
		return fmt.Sprintf("min_radius=%s spacing=%s", f(cfg.CircleMinRadius), f(cfg.CircleNodeSpacing))
	case layout.StrategyGrid:
		return fmt.Sprintf("node_sep=%s rank_sep=%s", f(cfg.NodeSep), f(cfg.RankSep))
	case layout.StrategyRadial:
		return fmt.Sprintf("ring_spacing=%s slots=%d", f(cfg.RingSpacing), cfg.RingSlots)
	}
	return ""
}

// strategiesCommand lists the available strategies with the config values
// each one uses.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the layout strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strategyTable(engine))
			return nil
		},
	}
}

func strategyTable(engine *layout.Engine) string {
	cfg := engine.Config()
	var rows [][]string
	for _, s := range engine.Strategies() {
		rows = append(rows, []string{string(s), describeStrategy(s), strategyParams(s, cfg)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Strategy", "Description", "Config").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
