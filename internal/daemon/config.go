// Package daemon wires the Pulse application state and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all Pulse configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Data          DataConfig          `toml:"data"`
	Logging       LoggingConfig       `toml:"logging"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// APIConfig controls the local HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DataConfig controls where state lives.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// TelemetryConfig toggles the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// NotificationsConfig selects the scheduler capability.
// "store" keeps a SQLite schedule ledger; "off" degrades every
// notification call to a no-op (constrained runtimes).
type NotificationsConfig struct {
	Mode string `toml:"mode"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	home := pulseHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7433,
		},
		Data: DataConfig{
			Dir: home,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "pulse.log"),
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Notifications: NotificationsConfig{
			Mode: "store",
		},
	}
}

// LoadConfig reads config from ~/.pulse/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(pulseHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.pulse/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(pulseHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// pulseHome returns the Pulse data directory, honoring PULSE_HOME.
func pulseHome() string {
	if dir := os.Getenv("PULSE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pulse"
	}
	return filepath.Join(home, ".pulse")
}
