package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var (
	grantStaged  bool
	revokeStaged bool
)

var grantCmd = &cobra.Command{
	Use:   "grant <name> <permission>",
	Short: "Grant a permission to a group",
	Long: `Grant a permission to a group.

The permission must already exist on the server. All members of the
group gain it immediately.

Examples:
  # Grant a permission
  cauthctl group grant editors articles:delete

  # Stage the change as a pending event
  cauthctl group grant editors articles:delete --staged`,
	Args: cobra.ExactArgs(2),
	RunE: runGroupGrant,
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <name> <permission>",
	Short: "Revoke a permission from a group",
	Long: `Revoke a permission from a group.

Examples:
  # Revoke a permission
  cauthctl group revoke editors articles:delete

  # Stage the change as a pending event
  cauthctl group revoke editors articles:delete --staged`,
	Args: cobra.ExactArgs(2),
	RunE: runGroupRevoke,
}

func init() {
	grantCmd.Flags().BoolVar(&grantStaged, "staged", false, "Stage as a pending event instead of applying")
	revokeCmd.Flags().BoolVar(&revokeStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runGroupGrant(cmd *cobra.Command, args []string) error {
	name, permission := args[0], args[1]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if grantStaged {
		eventID, err := client.UpdateGroupPermissionsStaged(name, "grant", permission)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	if err := client.UpdateGroupPermissions(name, "grant", permission); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Permission '%s' granted to group '%s'", permission, name))
	return nil
}

func runGroupRevoke(cmd *cobra.Command, args []string) error {
	name, permission := args[0], args[1]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if revokeStaged {
		eventID, err := client.UpdateGroupPermissionsStaged(name, "revoke", permission)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	if err := client.UpdateGroupPermissions(name, "revoke", permission); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Permission '%s' revoked from group '%s'", permission, name))
	return nil
}
