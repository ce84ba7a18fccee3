package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/internal/cli/credentials"
	"github.com/cauth-dev/cauth/pkg/apiclient"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the session and clear stored credentials",
	Long: `Invalidate the current session on the server and clear the stored token.

The server is asked to delete the session first; if it is unreachable the
local token is cleared anyway. The server URL and context configuration
are kept for easy re-login.

Examples:
  # Logout from current context
  cauthctl logout`,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		return fmt.Errorf("not logged in - no current context")
	}

	// Best-effort server-side invalidation. A stale or already-deleted
	// session is not worth failing the logout over.
	if ctx, err := store.GetCurrentContext(); err == nil && ctx.LoggedIn() {
		client := apiclient.New(ctx.ServerURL).WithToken(ctx.SessionToken)
		if err := client.Logout(); err != nil {
			fmt.Printf("Warning: could not invalidate session on server: %v\n", err)
		}
	}

	if err := store.ClearCurrentContext(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	fmt.Printf("Logged out from context: %s\n", contextName)
	return nil
}
