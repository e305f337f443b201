package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/venn/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for venn.

Besides commands and flags, the scripts complete --format values
(svg, png, pdf, json, comma-separated) and layout documents for visualize.

Load completions for the current shell session:

  bash:        source <(venn completion bash)
  zsh:         source <(venn completion zsh)
  fish:        venn completion fish | source
  powershell:  venn completion powershell | Out-String | Invoke-Expression

To load them in every session, write the script to your shell's completion
directory, for example:

  venn completion bash > ~/.local/share/bash-completion/completions/venn
  venn completion zsh > "${fpath[1]}/_venn"
  venn completion fish > ~/.config/fish/completions/venn.fish
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeFormats completes the last element of a comma-separated --format
// value, skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	used := make(map[string]bool)
	for _, f := range strings.Split(prefix, ",") {
		used[strings.TrimSpace(f)] = true
	}

	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
		if !used[f] && strings.HasPrefix(f, last) {
			out = append(out, prefix+f+"\t"+formatDescriptions[f])
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeLayouts offers JSON layout documents as the argument of visualize.
func completeLayouts(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
