package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kintree.

Besides commands and flags, the scripts complete strategy names, output
formats, directions and unreached policies.

Bash:
  $ source <(kintree completion bash)

Zsh:
  $ kintree completion zsh > "${fpath[1]}/_kintree"

Fish:
  $ kintree completion fish > ~/.config/fish/completions/kintree.fish

PowerShell:
  PS> kintree completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// flagValues lists the completions offered for each enumerated flag.
func flagValues() map[string][]string {
	strategies := make([]string, 0, 4)
	for _, s := range layout.Strategies() {
		strategies = append(strategies, string(s)+"\t"+describeStrategy(s))
	}
	return map[string][]string{
		"strategy":  strategies,
		"format":    pipeline.FormatNames(),
		"direction": {string(layout.TopBottom) + "\ttop to bottom", string(layout.LeftRight) + "\tleft to right"},
		"unreached": {string(layout.UnreachedKeep), string(layout.UnreachedRing)},
	}
}

// registerFlagCompletions walks the command tree and attaches value
// completion to every enumerated flag it finds.
func registerFlagCompletions(cmd *cobra.Command) {
	for name, values := range flagValues() {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, completeList(values, name == "format"))
	}
	for _, sub := range cmd.Commands() {
		registerFlagCompletions(sub)
	}
}

// completeList completes from values. For comma-separated flags only the
// last element is completed.
func completeList(values []string, commaSeparated bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		prefix := ""
		if commaSeparated {
			if i := strings.LastIndex(toComplete, ","); i >= 0 {
				prefix = toComplete[:i+1]
			}
		}
		out := make([]cobra.Completion, 0, len(values))
		for _, v := range values {
			out = append(out, prefix+v)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
