// Package event implements staged-event commands for cauthctl.
package event

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for staged event management.
var Cmd = &cobra.Command{
	Use:   "event",
	Short: "Staged event management",
	Long: `Manage staged events on the cauth server.

Any mutating command run with --staged records a pending event instead
of applying the change. The event captures the request and the issuing
session, and is applied later with "event commit" or discarded with
"event cancel". Committing checks the original issuer's permissions at
commit time, not staging time.

Examples:
  # Stage a change
  cauthctl group create auditors --staged

  # Apply it
  cauthctl event commit 42

  # Or discard it
  cauthctl event cancel 42`,
}

func init() {
	Cmd.AddCommand(commitCmd)
	Cmd.AddCommand(cancelCmd)
}
