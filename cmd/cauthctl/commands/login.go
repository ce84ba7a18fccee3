package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	"github.com/cauth-dev/cauth/internal/cli/credentials"
	"github.com/cauth-dev/cauth/internal/cli/prompt"
	"github.com/cauth-dev/cauth/pkg/apiclient"
)

var (
	loginServer   string
	loginUser     string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a cauth server",
	Long: `Authenticate with a cauth server and store the session token.

On first login, you must specify the server URL. Subsequent logins will
use the stored server URL unless overridden.

Examples:
  # First login to a server
  cauthctl login --server http://localhost:8080 --login admin

  # Login with password on command line (less secure)
  cauthctl login --server http://localhost:8080 -l admin -p secret

  # Re-login to stored server
  cauthctl login`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Server URL (required on first login)")
	loginCmd.Flags().StringVarP(&loginUser, "login", "l", "", "Login name")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	// Determine server URL
	serverURL := loginServer
	if serverURL == "" {
		ctx, err := store.GetCurrentContext()
		if err != nil || ctx == nil || ctx.ServerURL == "" {
			return fmt.Errorf("no server URL specified and no saved context found\n\n" +
				"Specify server URL:\n" +
				"  cauthctl login --server http://localhost:8080")
		}
		serverURL = ctx.ServerURL
	}

	parsedURL, err := url.Parse(serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "http"
		serverURL = parsedURL.String()
	}

	// Prompt for anything not given on the command line
	login := loginUser
	if login == "" {
		login, err = prompt.InputRequired("Login")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	password := loginPassword
	if password == "" {
		password, err = prompt.Password("Password")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	client := apiclient.New(serverURL)

	fmt.Printf("Logging in to %s as %s...\n", serverURL, login)
	token, err := client.Login(login, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		contextName = credentials.GenerateContextName(serverURL)
	}

	ctx := &credentials.Context{
		ServerURL:    serverURL,
		Login:        login,
		SessionToken: token,
	}

	if err := store.SetContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to set current context: %w", err)
	}

	fmt.Printf("Logged in successfully as %s\n", login)
	fmt.Printf("Context: %s\n", contextName)
	fmt.Printf("Credentials saved to: %s\n", store.ConfigPath())

	return nil
}
