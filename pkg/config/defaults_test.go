package config

import (
	"testing"
	"time"

	"github.com/cauth-dev/cauth/pkg/api"
	"github.com/cauth-dev/cauth/pkg/store"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("Expected default OTLP endpoint, got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("Expected sample rate 1.0, got %v", cfg.Telemetry.SampleRate)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("Expected sqlite database type, got %q", cfg.Database.Type)
	}
	if cfg.Database.SQLite.Path == "" {
		t.Error("Expected a default sqlite path")
	}
	if cfg.API.RequestTimeout != 30*time.Second {
		t.Errorf("Expected request timeout 30s, got %v", cfg.API.RequestTimeout)
	}
	if cfg.API.SessionTTL != 24*time.Hour {
		t.Errorf("Expected session TTL 24h, got %v", cfg.API.SessionTTL)
	}
	if cfg.Bootstrap.Policy != BootstrapEnsure {
		t.Errorf("Expected bootstrap policy ensure, got %q", cfg.Bootstrap.Policy)
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics to be disabled by default")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "debug", Format: "json", Output: "stderr"},
		API:     api.APIConfig{Port: 9999},
		Bootstrap: BootstrapConfig{
			Policy: BootstrapSkip,
		},
	}
	ApplyDefaults(cfg)

	// Level is normalized to uppercase
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected normalized level DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format json to be preserved, got %q", cfg.Logging.Format)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("Expected port 9999 to be preserved, got %d", cfg.API.Port)
	}
	if cfg.Bootstrap.Policy != BootstrapSkip {
		t.Errorf("Expected bootstrap policy skip to be preserved, got %q", cfg.Bootstrap.Policy)
	}
}

func TestApplyDefaults_PostgresDefaults(t *testing.T) {
	cfg := &Config{
		Database: store.Config{
			Type: store.DatabaseTypePostgres,
			Postgres: store.PostgresConfig{
				Host:     "db.internal",
				Database: "cauth",
				User:     "cauth",
			},
		},
	}
	ApplyDefaults(cfg)

	if cfg.Database.Postgres.Port != 5432 {
		t.Errorf("Expected default postgres port 5432, got %d", cfg.Database.Postgres.Port)
	}
	if cfg.Database.Postgres.SSLMode != "disable" {
		t.Errorf("Expected default ssl_mode disable, got %q", cfg.Database.Postgres.SSLMode)
	}
}
