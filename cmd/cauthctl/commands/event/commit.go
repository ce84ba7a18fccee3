package event

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var commitCmd = &cobra.Command{
	Use:   "commit <event-id>",
	Short: "Commit a staged event",
	Long: `Commit a staged event, applying the change it captured.

The change is applied with the permissions the original issuer holds
now. Committing an already-committed event is a no-op.

Examples:
  # Commit event 42
  cauthctl event commit 42`,
	Args: cobra.ExactArgs(1),
	RunE: runEventCommit,
}

func runEventCommit(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event ID '%s'", args[0])
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if err := client.CommitEvent(id); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Event %d committed", id))
	return nil
}
