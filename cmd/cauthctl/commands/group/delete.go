package group

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
	Short: "Delete a group",
	Long: `Delete a group from the server.

Members of the group immediately lose the permissions it granted.

Examples:
  # Delete a group (with confirmation)
  cauthctl group delete editors

  # Delete without confirmation
  cauthctl group delete editors --force

  # Stage the deletion as a pending event
  cauthctl group delete editors --staged`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
	deleteCmd.Flags().BoolVar(&deleteStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runGroupDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if deleteStaged {
		eventID, err := client.DeleteGroupStaged(name)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	return cmdutil.RunDeleteWithConfirmation("Group", name, deleteForce, func() error {
		return client.DeleteGroup(name)
	})
}
