package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tinypnr.

To load completions:

Bash:
  $ source <(tinypnr completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tinypnr completion bash > /etc/bash_completion.d/tinypnr
  # macOS:
  $ tinypnr completion bash > $(brew --prefix)/etc/bash_completion.d/tinypnr

Zsh:
  # To load completions for each session, execute once:
  $ tinypnr completion zsh > "${fpath[1]}/_tinypnr"

Fish:
  $ tinypnr completion fish | source

  # To load completions for each session, execute once:
  $ tinypnr completion fish > ~/.config/fish/completions/tinypnr.fish

PowerShell:
  PS> tinypnr completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
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

	return cmd
}
