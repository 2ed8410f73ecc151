package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierletters/pkg/core/letter"
	hio "github.com/matzehuels/hierletters/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for hierletters.

Besides subcommands and flags, the scripts complete letter arguments
(render A <TAB>, mask <TAB>) from the catalog and --format values from the
supported image formats.`,
		Example: `  source <(hierletters completion bash)
  hierletters completion zsh > "${fpath[1]}/_hierletters"
  hierletters completion fish > ~/.config/fish/completions/hierletters.fish`,
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

// completeLetters completes up to n positional letter arguments from the
// catalog. Matching ignores case, like letter.Parse.
func completeLetters(n int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []cobra.Completion
		for _, sym := range letter.Symbols() {
			if strings.HasPrefix(strings.ToLower(string(sym)), strings.ToLower(toComplete)) {
				out = append(out, cobra.Completion(sym))
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeFormats completes --format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	var out []cobra.Completion
	for _, f := range hio.Formats() {
		if strings.HasPrefix(string(f), strings.ToLower(toComplete)) {
			out = append(out, cobra.Completion(f))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
