package permission

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	"github.com/cauth-dev/cauth/pkg/apiclient"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get permission details",
	Long: `Get detailed information about a permission.

Examples:
  # Get a permission
  cauthctl permission get articles:edit

  # Get as JSON
  cauthctl permission get articles:edit -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runPermissionGet,
}

// SinglePermissionList renders a single permission as a FIELD/VALUE table.
type SinglePermissionList struct {
	Permission *apiclient.Permission
}

// Headers implements TableRenderer.
func (s SinglePermissionList) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (s SinglePermissionList) Rows() [][]string {
	return [][]string{
		{"Name", s.Permission.Name},
		{"Description", cmdutil.EmptyOr(s.Permission.Description, "-")},
	}
}

func runPermissionGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	permission, err := client.GetPermission(args[0])
	if err != nil {
		return err
	}

	return cmdutil.PrintResource(os.Stdout, permission, SinglePermissionList{Permission: permission})
}
