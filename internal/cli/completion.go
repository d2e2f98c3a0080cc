package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/layout"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/source"
)

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell.

  bash:        source <(weekgrid completion bash)
  zsh:         weekgrid completion zsh > "${fpath[1]}/_weekgrid"
  fish:        weekgrid completion fish | source
  powershell:  weekgrid completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := c.stdout
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

// registerFlagCompletions adds value completion for enumerated flags.
func registerFlagCompletions(root *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}
	_ = root.RegisterFlagCompletionFunc("source",
		fixed(source.KindDemo, source.KindFile, source.KindHTTP, source.KindMongo))
	_ = root.RegisterFlagCompletionFunc("dir", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})

	for _, cmd := range root.Commands() {
		if cmd.Flags().Lookup("grouping") != nil {
			_ = cmd.RegisterFlagCompletionFunc("grouping", fixed(layout.GroupingExact, layout.GroupingInterval))
		}
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", fixed(pipeline.FormatsFor(cmd.Name())...))
		}
	}
}
