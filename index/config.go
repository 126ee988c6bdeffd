package index

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Backend names an index implementation.
type Backend string

const (
	BackendAzure  Backend = "azure"
	BackendQdrant Backend = "qdrant"
)

// DefaultAzureAPIVersion is the Azure AI Search REST API version used when none is configured.
const DefaultAzureAPIVersion = "2023-11-01"

// DefaultTimeout bounds a single index request.
const DefaultTimeout = 60 * time.Second

// Config holds connection settings for an index backend.
type Config struct {
	// Backend selects the implementation. Default: BackendAzure
	Backend Backend

	// Endpoint is the service URL (Azure) or host:port (Qdrant gRPC).
	Endpoint string

	// APIKey authenticates requests. Optional for Qdrant.
	APIKey string

	// IndexName is the index (Azure) or collection (Qdrant) name.
	IndexName string

	// APIVersion is the Azure AI Search REST API version.
	APIVersion string

	// Timeout bounds each request. Default: 60s
	Timeout time.Duration

	// TLS encrypts the Qdrant gRPC connection. Always on when APIKey is set.
	TLS bool
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBackend sets the index implementation.
func WithBackend(b Backend) ConfigOption {
	return func(c *Config) {
		c.Backend = b
	}
}

// WithEndpoint sets the service address.
func WithEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithAPIKey sets the service key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithIndexName sets the index name.
func WithIndexName(name string) ConfigOption {
	return func(c *Config) {
		c.IndexName = name
	}
}

// WithAPIVersion sets the Azure AI Search REST API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithTLS enables TLS on the Qdrant gRPC connection.
func WithTLS(enabled bool) ConfigOption {
	return func(c *Config) {
		c.TLS = enabled
	}
}

// DefaultConfig returns a Config for Azure AI Search with no endpoint, key or index name.
func DefaultConfig() *Config {
	return &Config{
		Backend:    BackendAzure,
		APIVersion: DefaultAzureAPIVersion,
		Timeout:    DefaultTimeout,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ParseBackend converts a backend name to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendAzure, nil
	case BackendAzure, BackendQdrant:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	c.IndexName = strings.TrimSpace(c.IndexName)
	if c.Backend == "" {
		c.Backend = BackendAzure
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAzureAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return fmt.Errorf("index config: %w", err)
	}
	if c.Endpoint == "" {
		return errors.New("index config: Endpoint is required")
	}
	if c.Backend == BackendAzure && c.APIKey == "" {
		return errors.New("index config: APIKey is required")
	}
	if c.IndexName == "" {
		return errors.New("index config: IndexName is required")
	}
	return nil
}
