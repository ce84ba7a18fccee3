package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/internal/cli/output"
	"github.com/cauth-dev/cauth/internal/cli/timeutil"
	"github.com/cauth-dev/cauth/pkg/apiclient"
)

var (
	statusOutput string
	statusServer string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Display the current status of the cauth server.

This command checks the server health by calling the health endpoint
and displays status, uptime, and database readiness.

Examples:
  # Check status (uses default settings)
  cauth status

  # Check status of a remote server
  cauth status --server http://auth.internal:8080

  # Output as JSON
  cauth status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusServer, "server", "http://localhost:8080", "Server URL")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// ServerStatus represents the server status information.
type ServerStatus struct {
	Running   bool   `json:"running" yaml:"running"`
	Message   string `json:"message" yaml:"message"`
	StartedAt string `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Uptime    string `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Healthy   bool   `json:"healthy" yaml:"healthy"`
	Ready     bool   `json:"ready" yaml:"ready"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}

	status := ServerStatus{
		Running: false,
		Healthy: false,
		Message: "Server is not running",
	}

	client := apiclient.New(statusServer)

	health, err := client.Health()
	if err == nil {
		status.Running = true
		status.Healthy = health.Healthy()
		status.StartedAt = health.StartedAt
		status.Uptime = health.Uptime

		if err := client.Ready(); err == nil {
			status.Ready = true
		}

		switch {
		case status.Healthy && status.Ready:
			status.Message = "Server is running and healthy"
		case status.Healthy:
			status.Message = "Server is running but the database is not ready"
		default:
			status.Message = fmt.Sprintf("Server is running but unhealthy: %s", health.Error)
		}
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printStatusTable(status)
	}

	return nil
}

func printStatusTable(status ServerStatus) {
	fmt.Println()
	fmt.Println("cauth Server Status")
	fmt.Println("===================")
	fmt.Println()

	if status.Running {
		if status.Healthy && status.Ready {
			fmt.Printf("  Status:     \033[32m● Running\033[0m\n")
		} else {
			fmt.Printf("  Status:     \033[33m● Running (degraded)\033[0m\n")
		}
		if status.StartedAt != "" {
			fmt.Printf("  Started:    %s\n", timeutil.FormatTime(status.StartedAt))
		}
		if status.Uptime != "" {
			fmt.Printf("  Uptime:     %s\n", timeutil.FormatUptime(status.Uptime))
		}
	} else {
		fmt.Printf("  Status:     \033[31m○ Stopped\033[0m\n")
	}

	fmt.Println()
	fmt.Printf("  %s\n", status.Message)
	fmt.Println()
}
