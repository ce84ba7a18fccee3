package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var (
	addGroupStaged    bool
	removeGroupStaged bool
)

var addGroupCmd = &cobra.Command{
	Use:   "add-group <login> <group>",
	Short: "Add a user to a group",
	Long: `Add a user to a group.

The user gains all permissions attached to the group.

Examples:
  # Add alice to the staff group
  cauthctl user add-group alice staff

  # Stage the change as a pending event
  cauthctl user add-group alice staff --staged`,
	Args: cobra.ExactArgs(2),
	RunE: runUserAddGroup,
}

var removeGroupCmd = &cobra.Command{
	Use:   "remove-group <login> <group>",
	Short: "Remove a user from a group",
	Long: `Remove a user from a group.

Examples:
  # Remove alice from the staff group
  cauthctl user remove-group alice staff

  # Stage the change as a pending event
  cauthctl user remove-group alice staff --staged`,
	Args: cobra.ExactArgs(2),
	RunE: runUserRemoveGroup,
}

func init() {
	addGroupCmd.Flags().BoolVar(&addGroupStaged, "staged", false, "Stage as a pending event instead of applying")
	removeGroupCmd.Flags().BoolVar(&removeGroupStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runUserAddGroup(cmd *cobra.Command, args []string) error {
	login, group := args[0], args[1]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if addGroupStaged {
		eventID, err := client.UpdateUserGroupsStaged(login, "grant", group)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	if err := client.UpdateUserGroups(login, "grant", group); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("User '%s' added to group '%s'", login, group))
	return nil
}

func runUserRemoveGroup(cmd *cobra.Command, args []string) error {
	login, group := args[0], args[1]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if removeGroupStaged {
		eventID, err := client.UpdateUserGroupsStaged(login, "revoke", group)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	if err := client.UpdateUserGroups(login, "revoke", group); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("User '%s' removed from group '%s'", login, group))
	return nil
}
