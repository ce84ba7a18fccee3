package permission

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/cmd/cauthctl/cmdutil"
)

var (
	createDescription string
	createStaged      bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new permission",
	Long: `Create a new permission.

Permission names are colon-separated paths such as "articles:edit".
Creating a permission does not grant it to anyone; attach it to a group
afterwards.

Examples:
  # Create a permission
  cauthctl permission create articles:publish

  # Create with a description
  cauthctl permission create articles:publish --description "Publish articles"

  # Stage the creation as a pending event
  cauthctl permission create articles:publish --staged`,
	Args: cobra.ExactArgs(1),
	RunE: runPermissionCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Permission description")
	createCmd.Flags().BoolVar(&createStaged, "staged", false, "Stage as a pending event instead of applying")
}

func runPermissionCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if createStaged {
		eventID, err := client.CreatePermissionStaged(name, createDescription)
		if err != nil {
			return err
		}
		cmdutil.PrintStaged(eventID)
		return nil
	}

	if err := client.CreatePermission(name, createDescription); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Permission '%s' created successfully", name))
	return nil
}
