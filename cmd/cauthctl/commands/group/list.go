package group

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
	Short: "List groups",
	Long: `List groups defined on the server.

Results are ordered by name and paginated. Use --page to fetch
subsequent pages.

Examples:
  # List the first page of groups
  cauthctl group list

  # List as JSON
  cauthctl group list -o json`,
	RunE: runGroupList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().StringVar(&listOrder, "order", "asc", "Sort order (asc|desc)")
}

// GroupList is a list of groups for table rendering.
type GroupList []apiclient.Group

// Headers implements TableRenderer.
func (gl GroupList) Headers() []string {
	return []string{"NAME", "DESCRIPTION"}
}

// Rows implements TableRenderer.
func (gl GroupList) Rows() [][]string {
	rows := make([][]string, 0, len(gl))
	for _, g := range gl {
		rows = append(rows, []string{g.Name, cmdutil.EmptyOr(g.Description, "-")})
	}
	return rows
}

func runGroupList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	groups, err := client.ListGroups(listPage, listOrder)
	if err != nil {
		return err
	}

	return cmdutil.PrintOutput(os.Stdout, groups, len(groups) == 0, "No groups found.", GroupList(groups))
}
