// Package config provides YAML-based configuration management for the sensor node.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure loaded from tempnode.yaml.
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Network configuration (station connect + fallback access point)
	Network NetworkConfig `yaml:"network"`

	// Time synchronization configuration
	Time TimeConfig `yaml:"time"`

	// Telemetry acquisition configuration
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bind_address"`
	ReadTimeout  int    `yaml:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds"`
	IdleTimeout  int    `yaml:"idle_timeout_seconds"`
}

// NetworkConfig contains connectivity settings
type NetworkConfig struct {
	AccessPointName  string `yaml:"access_point_name"`
	ConnectTimeoutMS int    `yaml:"connect_timeout_ms"`
	PollIntervalMS   int    `yaml:"poll_interval_ms"`
	RestartDelayMS   int    `yaml:"restart_delay_ms"`
}

// TimeConfig contains NTP synchronization settings
type TimeConfig struct {
	NTPHost       string `yaml:"ntp_host"`
	OffsetSeconds int    `yaml:"offset_seconds"`
	MaxRetries    int    `yaml:"max_retries"`
}

// TelemetryConfig contains acquisition loop settings
type TelemetryConfig struct {
	SamplePeriodMS int `yaml:"sample_period_ms"`
}

// StorageConfig contains durable storage settings
type StorageConfig struct {
	DataDirectory        string `yaml:"data_directory"`
	CredentialsDirectory string `yaml:"credentials_directory"`
	LogFile              string `yaml:"log_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			BindAddress:  "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
		},
		Network: NetworkConfig{
			AccessPointName:  "tempnode-setup",
			ConnectTimeoutMS: 10000,
			PollIntervalMS:   100,
			RestartDelayMS:   3000,
		},
		Time: TimeConfig{
			NTPHost:       "pool.ntp.org",
			OffsetSeconds: 3600,
			MaxRetries:    5,
		},
		Telemetry: TelemetryConfig{
			SamplePeriodMS: 10000,
		},
		Storage: StorageConfig{
			DataDirectory:        "./data",
			CredentialsDirectory: "./data/credentials",
			LogFile:              "./data/data.csv",
		},
	}
}

// Load loads configuration from a YAML file. If the file does not exist,
// a default configuration is written there and returned.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		cfg.applyEnvironmentOverrides()
		cfg.resolvePaths(filepath.Dir(configPath))
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.resolvePaths(filepath.Dir(configPath))

	return cfg, nil
}

// Save saves the configuration to a YAML file
func (c *Config) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# tempnode configuration\n# This file is auto-generated on first run\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *Config) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
		c.Storage.CredentialsDirectory = filepath.Join(dataDir, "credentials")
		c.Storage.LogFile = filepath.Join(dataDir, "data.csv")
	}

	if host := os.Getenv("NTP_HOST"); host != "" {
		c.Time.NTPHost = host
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *Config) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if !filepath.IsAbs(c.Storage.CredentialsDirectory) {
		c.Storage.CredentialsDirectory = filepath.Join(configDir, c.Storage.CredentialsDirectory)
	}
	if !filepath.IsAbs(c.Storage.LogFile) {
		c.Storage.LogFile = filepath.Join(configDir, c.Storage.LogFile)
	}
}

// GetServerAddr returns the server bind address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// ConnectTimeout returns the station connect timeout as a duration
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Network.ConnectTimeoutMS) * time.Millisecond
}

// PollInterval returns the station status poll interval as a duration
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Network.PollIntervalMS) * time.Millisecond
}

// RestartDelay returns the post-provisioning restart delay as a duration
func (c *Config) RestartDelay() time.Duration {
	return time.Duration(c.Network.RestartDelayMS) * time.Millisecond
}

// SamplePeriod returns the acquisition cycle period as a duration
func (c *Config) SamplePeriod() time.Duration {
	return time.Duration(c.Telemetry.SamplePeriodMS) * time.Millisecond
}

// TimeOffset returns the configured UTC offset as a duration
func (c *Config) TimeOffset() time.Duration {
	return time.Duration(c.Time.OffsetSeconds) * time.Second
}

// EnsureDirectories creates all necessary directories
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDirectory,
		c.Storage.CredentialsDirectory,
		filepath.Dir(c.Storage.LogFile),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
