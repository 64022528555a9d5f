package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for stemloop.

Bash:
  $ source <(stemloop completion bash)

Zsh:
  $ stemloop completion zsh > "${fpath[1]}/_stemloop"

Fish:
  $ stemloop completion fish > ~/.config/fish/completions/stemloop.fish

PowerShell:
  PS> stemloop completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// flagCompletions lists the fixed values of enumerated flags.
var flagCompletions = map[string][]string{
	"format":      keys(pipeline.ValidFormats),
	"type":        keys(pipeline.ValidVizTypes),
	"radius-mode": {string(layout.RadiusDefault), string(layout.RadiusMin)},
}

// registerFlagCompletions attaches value completion to every command that
// defines one of the enumerated flags.
func registerFlagCompletions(cmd *cobra.Command) {
	for name, values := range flagCompletions {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		values := values
		_ = cmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		})
	}
	for _, sub := range cmd.Commands() {
		registerFlagCompletions(sub)
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
