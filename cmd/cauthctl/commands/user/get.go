package user

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	"github.com/cauth-dev/cauth/pkg/apiclient"
)

var getCmd = &cobra.Command{
	Use:   "get <login>",
	Short: "Get user details",
	Long: `Get detailed information about a user, including group membership.

Examples:
  # Get user details
  cauthctl user get alice

  # Get user details as JSON
  cauthctl user get alice -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runUserGet,
}

// SingleUserList renders a single user as a FIELD/VALUE table.
type SingleUserList struct {
	User *apiclient.UserDetail
}

// Headers implements TableRenderer.
func (s SingleUserList) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (s SingleUserList) Rows() [][]string {
	return [][]string{
		{"Login", s.User.Login},
		{"Details", cmdutil.EmptyOr(string(s.User.Details), "-")},
		{"Groups", cmdutil.EmptyOr(strings.Join(s.User.Groups, ", "), "-")},
	}
}

func runUserGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	user, err := client.GetUser(args[0])
	if err != nil {
		return err
	}

	return cmdutil.PrintResource(os.Stdout, user, SingleUserList{User: user})
}
