package permission

import (
	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var (
	deleteForce  bool
	deleteStaged bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a permission",
	Long: `Delete a permission from the server.

Groups holding the permission lose it silently.

Examples:
  # Delete a permission (with confirmation)
  cauthctl permission delete articles:publish

  # Delete without confirmation
  cauthctl permission delete articles:publish --force

  # Stage the deletion as a pending event
  cauthctl permission delete articles:publish --staged`,
	Args: cobra.ExactArgs(1),
	RunE: runPermissionDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
	deleteCmd.Flags().BoolVar(&deleteStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runPermissionDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if deleteStaged {
		eventID, err := client.DeletePermissionStaged(name)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	return cmdutil.RunDeleteWithConfirmation("Permission", name, deleteForce, func() error {
		return client.DeletePermission(name)
	})
}
