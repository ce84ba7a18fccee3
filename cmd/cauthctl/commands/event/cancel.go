package event

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <event-id>",
	Short: "Cancel a staged event",
	Long: `Cancel a staged event, discarding the change it captured.

Cancelling an already-cancelled event is a no-op.

Examples:
  # Cancel event 42
  cauthctl event cancel 42`,
	Args: cobra.ExactArgs(1),
	RunE: runEventCancel,
}

func runEventCancel(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event ID '%s'", args[0])
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if err := client.CancelEvent(id); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Event %d cancelled", id))
	return nil
}
