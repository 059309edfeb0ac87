package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dbouwman/graphql-api/errors"
	"github.com/dbouwman/graphql-api/gateway/graphql"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath      string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	ShowVersion     bool
	ShowHelp        bool
	Validate        bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("GRAPHQL_API_CONFIG", ""),
		"Path to YAML configuration file, empty for defaults (env: GRAPHQL_API_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("GRAPHQL_API_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: GRAPHQL_API_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("GRAPHQL_API_LOG_FORMAT", "json"),
		"Log format: json, text (env: GRAPHQL_API_LOG_FORMAT)")

	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("GRAPHQL_API_SHUTDOWN_TIMEOUT", 30*time.Second),
		"Graceful shutdown timeout (env: GRAPHQL_API_SHUTDOWN_TIMEOUT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Config file is optional; when given it must exist
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

// loadConfig reads the gateway configuration from a YAML file, or returns
// defaults when no path is given. Environment overrides cover the values
// most often set per deployment.
func loadConfig(path string) (graphql.Config, error) {
	cfg := graphql.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.WrapInvalid(err, "main", "loadConfig", "config file read")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.WrapInvalid(err, "main", "loadConfig", "config file parse")
		}
	}

	if v := os.Getenv("GRAPHQL_API_BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv("GRAPHQL_API_PORTAL_URL"); v != "" {
		cfg.PortalURL = v
	}
	if v := os.Getenv("GRAPHQL_API_HUB_URL"); v != "" {
		cfg.HubURL = v
	}
	if v := os.Getenv("GRAPHQL_API_DEMO_USERNAME"); v != "" {
		cfg.DemoUsername = v
	}
	if v := os.Getenv("GRAPHQL_API_DEMO_PASSWORD"); v != "" {
		cfg.DemoPassword = v
	}

	return cfg, nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - GraphQL facade over the portal catalog

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run with defaults against the public portal
  %s

  # Run with custom config
  %s --config=/etc/graphql-api/config.yaml

  # Run with debug logging
  %s --log-level=debug --log-format=text

  # Validate configuration only
  %s --config=config.yaml --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
