package permission

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	"github.com/cauth-dev/cauth/pkg/apiclient"
)

var (
	listPage  int
	listOrder string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List permissions",
	Long: `List permissions defined on the server.

Results are ordered by name and paginated. Use --page to fetch
subsequent pages.

Examples:
  # List the first page of permissions
  cauthctl permission list

  # List as JSON
  cauthctl permission list -o json`,
	RunE: runPermissionList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().StringVar(&listOrder, "order", "asc", "Sort order (asc|desc)")
}

// PermissionList is a list of permissions for table rendering.
type PermissionList []apiclient.Permission

// Headers implements TableRenderer.
func (pl PermissionList) Headers() []string {
	return []string{"NAME", "DESCRIPTION"}
}

// Rows implements TableRenderer.
func (pl PermissionList) Rows() [][]string {
	rows := make([][]string, 0, len(pl))
	for _, p := range pl {
		rows = append(rows, []string{p.Name, cmdutil.EmptyOr(p.Description, "-")})
	}
	return rows
}

func runPermissionList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	permissions, err := client.ListPermissions(listPage, listOrder)
	if err != nil {
		return err
	}

	return cmdutil.PrintOutput(os.Stdout, permissions, len(permissions) == 0, "No permissions found.", PermissionList(permissions))
}
