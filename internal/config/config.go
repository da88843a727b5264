package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pingwatch/internal/logger"
)

// Output modes for the dispatcher.
const (
	OutputFile = "file"
	OutputHEC  = "hec"
	OutputBoth = "both"
)

// HECConfig holds HTTP Event Collector sink settings.
type HECConfig struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	Token      string `yaml:"token"`
	Index      string `yaml:"index"`
	Sourcetype string `yaml:"sourcetype"`
	VerifyTLS  bool   `yaml:"verify_tls"`
}

// Config holds all configuration for the agent. It is constructed once at
// startup and passed by value; nothing mutates it during a run.
type Config struct {
	EndpointsFile        string        `yaml:"endpoints_file"`
	PingsPerCycle        int           `yaml:"pings_per_cycle"`
	CycleIntervalSeconds int           `yaml:"cycle_interval_seconds"`
	ProbeTimeoutSeconds  int           `yaml:"probe_timeout_seconds"`
	MaxParallelProbes    int           `yaml:"max_parallel_probes"`
	PrivilegedICMP       bool          `yaml:"privileged_icmp"`
	OutputMode           string        `yaml:"output_mode"`
	LogPath              string        `yaml:"log_path"`
	LogRotationSizeMB    int           `yaml:"log_rotation_size_mb"`
	TagPingRecords       bool          `yaml:"tag_ping_records"`
	ArchiveDB            string        `yaml:"archive_db"`
	ArchiveRetentionDays int           `yaml:"archive_retention_days"`
	RunOnce              bool          `yaml:"-"`
	Log                  logger.Config `yaml:"log"`
	HEC                  HECConfig     `yaml:"hec"`
}

// Default returns a fully-populated config; flags and the config file
// overlay onto this.
func Default() Config {
	return Config{
		EndpointsFile:        "endpoints.csv",
		PingsPerCycle:        5,
		CycleIntervalSeconds: 60,
		ProbeTimeoutSeconds:  2,
		MaxParallelProbes:    10,
		OutputMode:           OutputFile,
		LogPath:              "logs/pingwatch.log",
		LogRotationSizeMB:    10,
		TagPingRecords:       true,
		ArchiveRetentionDays: 30,
		Log:                  logger.DefaultConfig(),
		HEC:                  HECConfig{Sourcetype: "pingwatch", VerifyTLS: true},
	}
}

// CycleInterval returns the configured cycle cadence.
func (c *Config) CycleInterval() time.Duration {
	return time.Duration(c.CycleIntervalSeconds) * time.Second
}

// ProbeTimeout returns the per-attempt probe deadline.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// FileSinkActive reports whether the rotating log sink is selected.
func (c *Config) FileSinkActive() bool {
	return c.OutputMode == OutputFile || c.OutputMode == OutputBoth
}

// HECSinkActive reports whether the HTTP sink is selected.
func (c *Config) HECSinkActive() bool {
	return c.OutputMode == OutputHEC || c.OutputMode == OutputBoth
}

// LoadFile overlays values from a YAML config file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.EndpointsFile == "" {
		return fmt.Errorf("endpoints file must be specified")
	}
	if c.PingsPerCycle < 1 {
		return fmt.Errorf("pings per cycle must be at least 1")
	}
	if c.CycleIntervalSeconds <= 0 {
		return fmt.Errorf("cycle interval must be positive")
	}
	if c.ProbeTimeoutSeconds <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.MaxParallelProbes < 1 {
		return fmt.Errorf("max parallel probes must be at least 1")
	}

	switch c.OutputMode {
	case OutputFile, OutputHEC, OutputBoth:
	default:
		return fmt.Errorf("output mode must be file, hec or both, got %q", c.OutputMode)
	}

	if c.FileSinkActive() {
		if c.LogPath == "" {
			return fmt.Errorf("log path cannot be empty when file output is selected")
		}
		if c.LogRotationSizeMB < 1 {
			return fmt.Errorf("log rotation size must be at least 1 MB")
		}
	}

	if c.HECSinkActive() {
		if c.HEC.URL == "" {
			return fmt.Errorf("HEC URL is required when hec output is selected")
		}
		if c.HEC.Token == "" {
			return fmt.Errorf("HEC token is required when hec output is selected")
		}
	}

	return nil
}
