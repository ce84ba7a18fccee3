package user

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	"github.com/cauth-dev/cauth/internal/cli/prompt"
)

var (
	registerPassword string
	registerDetails  string
	registerStaged   bool
)

var registerCmd = &cobra.Command{
	Use:   "register <login>",
	Short: "Register a new user",
	Long: `Register a new user on the server.

The password is prompted for interactively unless provided with
--password. Arbitrary user details can be attached as a JSON object.

Examples:
  # Register interactively
  cauthctl user register alice

  # Register with details
  cauthctl user register alice --details '{"email":"alice@example.com"}'

  # Stage the registration as a pending event
  cauthctl user register alice --staged`,
	Args: cobra.ExactArgs(1),
	RunE: runUserRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted if not provided)")
	registerCmd.Flags().StringVar(&registerDetails, "details", "", "User details as a JSON object")
	registerCmd.Flags().BoolVar(&registerStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runUserRegister(cmd *cobra.Command, args []string) error {
	login := args[0]

	var details json.RawMessage
	if registerDetails != "" {
		if !json.Valid([]byte(registerDetails)) {
			return fmt.Errorf("--details must be valid JSON")
		}
		details = json.RawMessage(registerDetails)
	}

	password := registerPassword
	if password == "" {
		var err error
		password, err = prompt.PasswordWithConfirmation("Password", "Confirm password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	// Registration is open; no session is required.
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	if registerStaged {
		eventID, err := client.RegisterStaged(login, password, details)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	if err := client.Register(login, password, details); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("User '%s' registered successfully", login))
	return nil
}
