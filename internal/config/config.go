// Package config manages loading and interpreting application configuration.
package config

import (
	"time"

	"github.com/reamplc-eng/shopify-order-mcp/internal/shopify"
)

const (
	// defaultPort is the listening port used when none is configured.
	defaultPort = "3000"
	// defaultRequestTimeout bounds each upstream Admin API call.
	defaultRequestTimeout = 10 * time.Second
)

// Config represents the top-level application configuration. Values come from
// flags, an optional config file, and environment variables, merged by viper
// in the command layer.
type Config struct {
	// ShopDomain is the store hostname, e.g. my-store.myshopify.com.
	ShopDomain string `mapstructure:"shopDomain"`
	// AccessToken is the Admin API access token. Its absence does not block
	// startup; every upstream call fails until it is set.
	AccessToken string `mapstructure:"accessToken"`
	// APIVersion selects the versioned admin path.
	APIVersion string `mapstructure:"apiVersion"`
	// Port is the HTTP listening port.
	Port string `mapstructure:"port"`
	// MCPToken gates the /mcp HTTP routes with bearer auth when set.
	MCPToken string `mapstructure:"mcpToken"`
	// TimeoutSeconds overrides the upstream request timeout.
	TimeoutSeconds int `mapstructure:"timeout"`
}

// ListenPort returns the configured port, falling back to the default.
func (c Config) ListenPort() string {
	if c.Port == "" {
		return defaultPort
	}
	return c.Port
}

// AdminAPIVersion returns the configured Admin API version, falling back to
// the client's pinned default.
func (c Config) AdminAPIVersion() string {
	if c.APIVersion == "" {
		return shopify.DefaultAPIVersion
	}
	return c.APIVersion
}

// RequestTimeout returns the timeout for upstream HTTP requests.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CredentialPresent reports whether an upstream access token is configured.
func (c Config) CredentialPresent() bool {
	return c.AccessToken != ""
}
