// Package commands implements the cauthctl CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	ctxcmd "github.com/cauth-dev/cauth/cmd/cauthctl/commands/context"
	"github.com/cauth-dev/cauth/cmd/cauthctl/commands/event"
	"github.com/cauth-dev/cauth/cmd/cauthctl/commands/group"
	"github.com/cauth-dev/cauth/cmd/cauthctl/commands/permission"
	"github.com/cauth-dev/cauth/cmd/cauthctl/commands/user"
)

// Build-time variables set from main
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cauthctl",
	Short: "cauthctl - Control the cauth server",
	Long: `cauthctl is a command-line client for the cauth authentication service.

It manages users, groups, permissions, and staged events on a running
cauth server over its HTTP API.

Start by logging in:
  cauthctl login --server http://localhost:8080

Then manage resources:
  cauthctl user list
  cauthctl group create admins --permissions users:delete
  cauthctl permission list

Stage changes for review instead of applying them directly:
  cauthctl group create auditors --staged
  cauthctl event commit 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cmdutil.Flags.ServerURL, "server", "", "Server URL (overrides stored context)")
	rootCmd.PersistentFlags().StringVar(&cmdutil.Flags.Token, "token", "", "Session token (overrides stored context)")
	rootCmd.PersistentFlags().StringVarP(&cmdutil.Flags.Output, "output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&cmdutil.Flags.NoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(ctxcmd.Cmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(user.Cmd)
	rootCmd.AddCommand(group.Cmd)
	rootCmd.AddCommand(permission.Cmd)
	rootCmd.AddCommand(event.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
