// Package context implements context management commands for cauthctl.
package context

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for context management.
var Cmd = &cobra.Command{
	Use:   "context",
	Short: "Context management",
	Long: `Manage server contexts.

A context stores a server URL, login name, and session token. Contexts
make it easy to work with multiple cauth servers.

Examples:
  # Show current context
  cauthctl context current

  # List all contexts
  cauthctl context list

  # Switch to a different context
  cauthctl context use production

  # Rename a context
  cauthctl context rename default production

  # Delete a context
  cauthctl context delete staging`,
}

func init() {
	Cmd.AddCommand(currentCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
}
