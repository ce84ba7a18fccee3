package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cauth-dev/cauth/internal/logger"
	"github.com/cauth-dev/cauth/internal/telemetry"
	"github.com/cauth-dev/cauth/pkg/api"
	"github.com/cauth-dev/cauth/pkg/config"
	"github.com/cauth-dev/cauth/pkg/events"
	"github.com/cauth-dev/cauth/pkg/metrics"
	"github.com/cauth-dev/cauth/pkg/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the cauth server",
	Long: `Start the cauth server with the specified configuration.

The server runs in the foreground; use a process supervisor (systemd,
runit, a container runtime) for background operation.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/cauth/config.yaml.

Examples:
  # Start with default config location
  cauth start

  # Start with custom config file
  cauth start --config /etc/cauth/config.yaml

  # Start with environment variable overrides
  CAUTH_LOGGING_LEVEL=DEBUG cauth start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "cauth",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}

	// Initialize metrics (if enabled)
	if cfg.Metrics.Enabled {
		metrics.Init()
		logger.Info("Metrics enabled", "endpoint", "/metrics")
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Initialize the store
	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("store close error", "error", err)
		}
	}()
	logger.Info("Store initialized", "type", string(cfg.Database.Type))

	// Seed baseline permissions and the root group
	if cfg.Bootstrap.Policy == config.BootstrapEnsure {
		if err := st.EnsureDefaults(ctx); err != nil {
			return fmt.Errorf("failed to seed baseline data: %w", err)
		}
		logger.Info("Baseline permissions and root group ensured")
	} else {
		logger.Info("Bootstrap skipped", "policy", cfg.Bootstrap.Policy)
	}

	// Create the event engine
	policy := events.Policy{AllowSelfCommit: !cfg.Events.RequireSecondApprover}
	engine := events.New(st, policy, cfg.API.SessionTTL)

	// Create the API server
	server := api.NewServer(cfg.API, st, engine)
	logger.Info("API server configured", "port", cfg.API.Port)

	// Start the server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for server to shut down gracefully
		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
