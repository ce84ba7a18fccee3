package group

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	"github.com/cauth-dev/cauth/pkg/apiclient"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get group details",
	Long: `Get detailed information about a group, including its permissions.

Examples:
  # Get group details
  cauthctl group get admins

  # Get group details as JSON
  cauthctl group get admins -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupGet,
}

// SingleGroupList renders a single group as a FIELD/VALUE table.
type SingleGroupList struct {
	Group *apiclient.GroupDetail
}

// Headers implements TableRenderer.
func (s SingleGroupList) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (s SingleGroupList) Rows() [][]string {
	return [][]string{
		{"Name", s.Group.Name},
		{"Description", cmdutil.EmptyOr(s.Group.Description, "-")},
		{"Permissions", cmdutil.EmptyOr(strings.Join(s.Group.Permissions, ", "), "-")},
	}
}

func runGroupGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	group, err := client.GetGroup(args[0])
	if err != nil {
		return err
	}

	return cmdutil.PrintResource(os.Stdout, group, SingleGroupList{Group: group})
}
