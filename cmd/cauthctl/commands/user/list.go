package user

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
	Short: "List users",
	Long: `List users registered on the server.

Results are ordered by login and paginated. Use --page to fetch
subsequent pages.

Examples:
  # List the first page of users
  cauthctl user list

  # List the second page in descending order
  cauthctl user list --page 2 --order desc

  # List as JSON
  cauthctl user list -o json`,
	RunE: runUserList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().StringVar(&listOrder, "order", "asc", "Sort order (asc|desc)")
}

// UserList is a list of users for table rendering.
type UserList []apiclient.User

// Headers implements TableRenderer.
func (ul UserList) Headers() []string {
	return []string{"LOGIN", "DETAILS"}
}

// Rows implements TableRenderer.
func (ul UserList) Rows() [][]string {
	rows := make([][]string, 0, len(ul))
	for _, u := range ul {
		rows = append(rows, []string{u.Login, cmdutil.EmptyOr(string(u.Details), "-")})
	}
	return rows
}

func runUserList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	users, err := client.ListUsers(listPage, listOrder)
	if err != nil {
		return err
	}

	return cmdutil.PrintOutput(os.Stdout, users, len(users) == 0, "No users found.", UserList(users))
}
