// Package permission implements permission management commands for cauthctl.
package permission

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for permission management.
var Cmd = &cobra.Command{
	Use:   "permission",
	Short: "Permission management",
	Long: `Manage permissions on the cauth server.

Permissions are colon-separated names such as "articles:edit" or
"users:delete:bob". A group holding a permission also holds everything
underneath it: "users:delete" covers "users:delete:bob".

Examples:
  # List all permissions
  cauthctl permission list

  # Get a permission
  cauthctl permission get articles:edit

  # Create a new permission
  cauthctl permission create articles:publish --description "Publish articles"

  # Delete a permission
  cauthctl permission delete articles:publish`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
}
