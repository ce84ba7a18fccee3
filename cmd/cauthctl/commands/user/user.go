// Package user implements user management commands for cauthctl.
package user

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for user management.
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "User management",
	Long: `Manage users on the cauth server.

User commands allow you to register, list, get, and delete users, manage
group membership, and probe effective permissions. Most operations
require the corresponding users:* permission.

Examples:
  # List all users
  cauthctl user list

  # Get user details
  cauthctl user get alice

  # Register a new user
  cauthctl user register alice

  # Add a user to a group
  cauthctl user add-group alice staff

  # Remove a user from a group
  cauthctl user remove-group alice staff

  # Check whether a user holds a permission
  cauthctl user probe alice users:delete

  # Delete a user
  cauthctl user delete alice`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(addGroupCmd)
	Cmd.AddCommand(removeGroupCmd)
	Cmd.AddCommand(probeCmd)
}
