package ecommerce

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
)

// Errors for dummy store configuration
var (
	ErrDummyStoreConfigMissingBaseURL = errors.New("dummy store: base URL is required")
	ErrDummyStoreConfigInvalidBaseURL = errors.New("dummy store: base URL must be an absolute http(s) URL")
)

// DummyStoreConfig holds what the adapter needs to reach one dummy store
type DummyStoreConfig struct {
	// BaseURL is the gateway root, without a trailing slash
	BaseURL string
	// Token is sent as a bearer token when non-empty
	Token string
	// Timeout bounds every gateway call
	Timeout time.Duration
}

// NewDummyStoreConfig builds a configuration from an integration record
func NewDummyStoreConfig(rec *integration.EcommerceIntegration, timeout time.Duration) *DummyStoreConfig {
	return &DummyStoreConfig{
		BaseURL: rec.BaseURL,
		Token:   rec.Token,
		Timeout: timeout,
	}
}

// Validate validates the configuration and applies the default timeout
func (c *DummyStoreConfig) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return ErrDummyStoreConfigMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrDummyStoreConfigInvalidBaseURL
	}
	timeout, err := integration.NormalizeGatewayTimeout(c.Timeout)
	if err != nil {
		return err
	}
	c.Timeout = timeout
	return nil
}

// endpoint joins the base URL and a path
func (c *DummyStoreConfig) endpoint(path string) string {
	return c.BaseURL + path
}
