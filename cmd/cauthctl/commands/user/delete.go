package user

import (
	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var (
	deleteForce  bool
	deleteStaged bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <login>",
	Short: "Delete a user",
	Long: `Delete a user from the server.

Deleting a user removes group memberships and invalidates any active
sessions for that user.

Examples:
  # Delete a user (with confirmation)
  cauthctl user delete alice

  # Delete without confirmation
  cauthctl user delete alice --force

  # Stage the deletion as a pending event
  cauthctl user delete alice --staged`,
	Args: cobra.ExactArgs(1),
	RunE: runUserDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
	deleteCmd.Flags().BoolVar(&deleteStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	login := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if deleteStaged {
		eventID, err := client.DeleteUserStaged(login)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	return cmdutil.RunDeleteWithConfirmation("User", login, deleteForce, func() error {
		return client.DeleteUser(login)
	})
}
