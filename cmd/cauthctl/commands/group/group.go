// Package group implements group management commands for cauthctl.
package group

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for group management.
var Cmd = &cobra.Command{
	Use:   "group",
	Short: "Group management",
	Long: `Manage groups on the cauth server.

Group commands allow you to create, list, get, and delete groups, as
well as grant and revoke the permissions attached to them. Most
operations require the corresponding groups:* permission.

Examples:
  # List all groups
  cauthctl group list

  # Get group details
  cauthctl group get admins

  # Create a new group with permissions
  cauthctl group create editors --permissions articles:edit,articles:publish

  # Grant a permission to a group
  cauthctl group grant editors articles:delete

  # Revoke a permission from a group
  cauthctl group revoke editors articles:delete

  # Delete a group
  cauthctl group delete editors`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(grantCmd)
	Cmd.AddCommand(revokeCmd)
}
