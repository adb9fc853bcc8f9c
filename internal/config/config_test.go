package config

import (
	"testing"
	"time"

	"github.com/reamplc-eng/shopify-order-mcp/internal/shopify"
)

func TestDefaults(t *testing.T) {
	var c Config
	if got := c.ListenPort(); got != "3000" {
		t.Errorf("ListenPort() = %q", got)
	}
	if got := c.AdminAPIVersion(); got != shopify.DefaultAPIVersion {
		t.Errorf("AdminAPIVersion() = %q", got)
	}
	if got := c.RequestTimeout(); got != 10*time.Second {
		t.Errorf("RequestTimeout() = %v", got)
	}
	if c.CredentialPresent() {
		t.Error("CredentialPresent() must be false when token empty")
	}
}

func TestOverrides(t *testing.T) {
	c := Config{
		Port:           "8080",
		APIVersion:     "2025-01",
		TimeoutSeconds: 30,
		AccessToken:    "shpat_x",
	}
	if got := c.ListenPort(); got != "8080" {
		t.Errorf("ListenPort() = %q", got)
	}
	if got := c.AdminAPIVersion(); got != "2025-01" {
		t.Errorf("AdminAPIVersion() = %q", got)
	}
	if got := c.RequestTimeout(); got != 30*time.Second {
		t.Errorf("RequestTimeout() = %v", got)
	}
	if !c.CredentialPresent() {
		t.Error("CredentialPresent() must be true")
	}
}
