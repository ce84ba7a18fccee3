package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var (
	createDescription string
	createPermissions string
	createStaged      bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new group",
	Long: `Create a new group, optionally with an initial set of permissions.

All listed permissions must already exist on the server.

Examples:
  # Create an empty group
  cauthctl group create editors

  # Create a group with a description and permissions
  cauthctl group create editors \
    --description "Article editors" \
    --permissions articles:edit,articles:publish

  # Stage the creation as a pending event
  cauthctl group create editors --staged`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Group description")
	createCmd.Flags().StringVar(&createPermissions, "permissions", "", "Comma-separated list of permissions to attach")
	createCmd.Flags().BoolVar(&createStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	permissions := cmdutil.ParseCommaSeparatedList(createPermissions)

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if createStaged {
		eventID, err := client.CreateGroupStaged(name, createDescription, permissions)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	if err := client.CreateGroup(name, createDescription, permissions); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Group '%s' created successfully", name))
	return nil
}
