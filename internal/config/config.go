package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the Plex connection settings
type ServerConfig struct {
	URL   string `mapstructure:"url"`   // Server URL
	Token string `mapstructure:"token"` // X-Plex-Token
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:   "http://localhost:32400",
			Token: "",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "usher", "usher.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "usher", "usher.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "usher")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "usher")
	}
}

// Load loads configuration from file and environment. Environment variables
// take precedence over the config file, which takes precedence over defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides. The PLEX_* names match what the Plex
	// ecosystem conventionally uses, so a token set up for other tooling
	// works here unchanged.
	viper.BindEnv("server.url", "PLEX_URL")
	viper.BindEnv("server.token", "PLEX_TOKEN")
	viper.BindEnv("logging.file", "USHER_LOG_FILE")
	viper.BindEnv("logging.level", "USHER_LOG_LEVEL")

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// IsConfigured returns true if the server URL and token are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != ""
}
