package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/internal/cli/prompt"
	"github.com/cauth-dev/cauth/pkg/config"
	"github.com/cauth-dev/cauth/pkg/store"
)

var (
	initForce    bool
	initDefaults bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a configuration file",
	Long: `Initialize a cauth configuration file.

By default this runs a short interactive wizard. Use --defaults to write
a configuration with default values without prompting.

The configuration file is created at $XDG_CONFIG_HOME/cauth/config.yaml.
Use --config to specify a custom path.

Examples:
  # Interactive initialization at the default location
  cauth init

  # Non-interactive with defaults
  cauth init --defaults

  # Initialize with custom path
  cauth init --config /etc/cauth/config.yaml

  # Force overwrite existing config
  cauth init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "Write defaults without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		confirmed, err := prompt.ConfirmWithForce(
			fmt.Sprintf("Configuration file %s already exists. Overwrite?", configPath), initForce)
		if err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("\nAborted.")
				return nil
			}
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := config.GetDefaultConfig()

	if !initDefaults {
		if err := promptConfig(cfg); err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("\nAborted.")
				return nil
			}
			return err
		}
	}

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: cauth start")
	fmt.Printf("  3. Or specify custom config: cauth start --config %s\n", configPath)

	return nil
}

// promptConfig walks the user through the settings that most often need
// changing. Everything else keeps its default and can be edited in the file.
func promptConfig(cfg *config.Config) error {
	port, err := prompt.InputPort("API port", cfg.API.Port)
	if err != nil {
		return err
	}
	cfg.API.Port = port

	dbType, err := prompt.SelectString("Database backend", []string{
		string(store.DatabaseTypeSQLite),
		string(store.DatabaseTypePostgres),
	})
	if err != nil {
		return err
	}
	cfg.Database.Type = store.DatabaseType(dbType)

	switch cfg.Database.Type {
	case store.DatabaseTypeSQLite:
		path, err := prompt.Input("SQLite database path", cfg.Database.SQLite.Path)
		if err != nil {
			return err
		}
		cfg.Database.SQLite.Path = path

	case store.DatabaseTypePostgres:
		host, err := prompt.InputRequired("PostgreSQL host")
		if err != nil {
			return err
		}
		cfg.Database.Postgres.Host = host

		dbPort, err := prompt.InputPort("PostgreSQL port", 5432)
		if err != nil {
			return err
		}
		cfg.Database.Postgres.Port = dbPort

		name, err := prompt.InputRequired("PostgreSQL database name")
		if err != nil {
			return err
		}
		cfg.Database.Postgres.Database = name

		user, err := prompt.InputRequired("PostgreSQL user")
		if err != nil {
			return err
		}
		cfg.Database.Postgres.User = user

		password, err := prompt.Password("PostgreSQL password")
		if err != nil {
			return err
		}
		cfg.Database.Postgres.Password = password
	}

	secondApprover, err := prompt.Confirm("Require a second approver for staged events?", false)
	if err != nil {
		return err
	}
	cfg.Events.RequireSecondApprover = secondApprover

	// Defaults recompute postgres port/ssl fields if the backend changed
	config.ApplyDefaults(cfg)

	return nil
}
