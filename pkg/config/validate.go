package config

import "fmt"

// Validate checks the configuration for invalid values.
//
// Called by Load after defaults have been applied, so every field is expected
// to hold either an explicit value or its default.
func Validate(cfg *Config) error {
	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}
	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return err
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %v", cfg.ShutdownTimeout)
	}
	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := validateAPI(cfg); err != nil {
		return err
	}
	if err := validateBootstrap(&cfg.Bootstrap); err != nil {
		return err
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	switch cfg.Level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logging.level must be one of DEBUG, INFO, WARN, ERROR, got %q", cfg.Level)
	}

	switch cfg.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Format)
	}

	if cfg.Output == "" {
		return fmt.Errorf("logging.output must not be empty")
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) error {
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0.0 and 1.0, got %v", cfg.SampleRate)
	}
	if cfg.Enabled && cfg.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}

func validateAPI(cfg *Config) error {
	if cfg.API.Port < 1 || cfg.API.Port > 65535 {
		return fmt.Errorf("api.port must be between 1 and 65535, got %d", cfg.API.Port)
	}
	if cfg.API.SessionTTL <= 0 {
		return fmt.Errorf("api.session_ttl must be positive, got %v", cfg.API.SessionTTL)
	}
	return nil
}

func validateBootstrap(cfg *BootstrapConfig) error {
	switch cfg.Policy {
	case BootstrapEnsure, BootstrapSkip:
		return nil
	default:
		return fmt.Errorf("bootstrap.policy must be %q or %q, got %q",
			BootstrapEnsure, BootstrapSkip, cfg.Policy)
	}
}
