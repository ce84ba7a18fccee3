package user

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
	"github.com/cauth-dev/cauth/internal/cli/output"
)

var probeCmd = &cobra.Command{
	Use:   "probe <login> <permission>",
	Short: "Check whether a user holds a permission",
	Long: `Check whether a user holds a permission through any of their groups.

Prefix matching applies: a user holding "users:delete" also passes a
probe for "users:delete:bob".

Examples:
  # Check whether alice may delete users
  cauthctl user probe alice users:delete

  # Check an instance-scoped permission
  cauthctl user probe alice users:delete:bob`,
	Args: cobra.ExactArgs(2),
	RunE: runUserProbe,
}

func runUserProbe(cmd *cobra.Command, args []string) error {
	login, permission := args[0], args[1]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	granted, err := client.ProbePermission(login, permission)
	if err != nil {
		return err
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	result := struct {
		Login      string `json:"login" yaml:"login"`
		Permission string `json:"permission" yaml:"permission"`
		Granted    bool   `json:"granted" yaml:"granted"`
	}{login, permission, granted}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, result)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, result)
	default:
		if granted {
			fmt.Printf("User '%s' holds '%s'\n", login, permission)
		} else {
			fmt.Printf("User '%s' does not hold '%s'\n", login, permission)
		}
	}

	return nil
}
