package graphql

import (
	"fmt"
	"time"

	"github.com/dbouwman/graphql-api/errors"
	"github.com/dbouwman/graphql-api/portal"
)

// Config holds configuration for the GraphQL gateway
type Config struct {
	// BindAddress is the HTTP bind address (default: ":4000")
	BindAddress string `json:"bind_address" yaml:"bind_address"`

	// Path is the GraphQL endpoint path (default: "/graphql")
	Path string `json:"path" yaml:"path"`

	// PortalURL is the sharing API root of the portal backend
	// (default: the public portal)
	PortalURL string `json:"portal_url" yaml:"portal_url"`

	// HubURL is the dataset API root used by the dataset root field
	// (default: "https://hub.arcgis.com/api/v3")
	HubURL string `json:"hub_url" yaml:"hub_url"`

	// EnablePlayground enables the GraphQL Playground UI (default: true)
	EnablePlayground bool `json:"enable_playground" yaml:"enable_playground"`

	// EnableCORS enables CORS headers (default: true)
	EnableCORS bool `json:"enable_cors" yaml:"enable_cors"`

	// CORSOrigins lists allowed CORS origins (default: ["*"])
	CORSOrigins []string `json:"cors_origins,omitempty" yaml:"cors_origins"`

	// TimeoutStr is the HTTP read/write timeout (default: "30s")
	TimeoutStr string `json:"timeout,omitempty" yaml:"timeout"`

	// DemoUsername and DemoPassword back the quickToken development
	// helper. Leave empty to disable the field.
	DemoUsername string `json:"demo_username,omitempty" yaml:"demo_username"`
	DemoPassword string `json:"demo_password,omitempty" yaml:"demo_password"`

	// timeout is the parsed duration (internal use)
	timeout time.Duration
}

// Validate ensures the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.BindAddress == "" {
		c.BindAddress = ":4000"
	}

	if c.Path == "" {
		c.Path = "/graphql"
	}
	if c.Path[0] != '/' {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"path must start with /")
	}

	if c.PortalURL == "" {
		c.PortalURL = portal.DefaultPortalURL
	}

	if c.HubURL == "" {
		c.HubURL = "https://hub.arcgis.com/api/v3"
	}

	if c.TimeoutStr == "" {
		c.timeout = 30 * time.Second
	} else {
		timeout, err := time.ParseDuration(c.TimeoutStr)
		if err != nil {
			return errors.WrapInvalid(err, "Config", "Validate",
				fmt.Sprintf("invalid timeout format: %s", c.TimeoutStr))
		}
		if timeout < 100*time.Millisecond || timeout > 5*time.Minute {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
				"timeout must be between 100ms and 5m")
		}
		c.timeout = timeout
	}

	if c.EnableCORS && len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}

	// quickToken needs both halves of the credential or neither
	if (c.DemoUsername == "") != (c.DemoPassword == "") {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"demo_username and demo_password must be set together")
	}

	return nil
}

// Timeout returns the parsed timeout duration
func (c *Config) Timeout() time.Duration {
	return c.timeout
}

// DefaultConfig returns default GraphQL gateway configuration
func DefaultConfig() Config {
	return Config{
		BindAddress:      ":4000",
		Path:             "/graphql",
		PortalURL:        portal.DefaultPortalURL,
		HubURL:           "https://hub.arcgis.com/api/v3",
		EnablePlayground: true,
		EnableCORS:       true,
		CORSOrigins:      []string{"*"},
		TimeoutStr:       "30s",
	}
}
