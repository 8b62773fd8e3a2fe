// Package config loads and validates server configuration and
// declarative topology documents.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig is the YAML configuration of the topology server.
// Durations are strings in time.ParseDuration syntax.
type ServerConfig struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`
	// DataDir is where snapshots are stored.
	DataDir string `yaml:"data_dir"`
	// CompressSnapshots enables snappy compression of snapshots.
	CompressSnapshots bool `yaml:"compress_snapshots"`
	// SnapshotInterval is how often the namespace is persisted, e.g.
	// "5m". Empty disables periodic snapshots.
	SnapshotInterval string `yaml:"snapshot_interval"`
	// LogLevel is DEBUG, INFO, WARN or ERROR.
	LogLevel string `yaml:"log_level"`
	// EventListenAddr, when set, publishes topology events on a
	// nanomsg socket, e.g. "tcp://:5555".
	EventListenAddr string `yaml:"event_listen_addr"`
	// TopologyFile, when set, seeds the namespace from a declarative
	// topology document on startup.
	TopologyFile string `yaml:"topology_file"`
	// ShutdownTimeout bounds graceful HTTP shutdown, e.g. "10s".
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// DefaultServerConfig returns the configuration used when no file or
// field is given.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:      ":8080",
		DataDir:         "./data",
		LogLevel:        "INFO",
		ShutdownTimeout: "10s",
	}
}

// LoadServerConfig reads a YAML server configuration, filling zero
// fields with defaults.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	def := DefaultServerConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.ShutdownTimeout == "" {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c ServerConfig) Validate() error {
	return NewConfigValidator("ServerConfig").
		Required("ListenAddr", c.ListenAddr).
		Required("DataDir", c.DataDir).
		OneOf("LogLevel", c.LogLevel, []string{"DEBUG", "INFO", "WARN", "ERROR"}).
		Duration("SnapshotInterval", c.SnapshotInterval).
		Duration("ShutdownTimeout", c.ShutdownTimeout).
		Err()
}

// SnapshotEvery parses the snapshot interval; zero means disabled.
func (c ServerConfig) SnapshotEvery() time.Duration {
	return parseDuration(c.SnapshotInterval, 0)
}

// ShutdownGrace parses the shutdown timeout.
func (c ServerConfig) ShutdownGrace() time.Duration {
	return parseDuration(c.ShutdownTimeout, 10*time.Second)
}

// parseDuration parses a duration string with a default value
func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}
