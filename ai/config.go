// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"

	"github.com/poiesic/profindex/core"
)

// APIType selects the wire dialect of the embedding service.
type APIType string

const (
	// APITypeAzure targets an Azure OpenAI resource. The embedding model name
	// doubles as the deployment name.
	APITypeAzure APIType = "azure"
	// APITypeOpenAI targets api.openai.com or any OpenAI-compatible server.
	APITypeOpenAI APIType = "openai"
)

// DefaultAPIVersion is the Azure OpenAI REST API version used when none is configured.
const DefaultAPIVersion = "2023-07-01-preview"

// DefaultEmbeddingModel produces 3072-dimensional vectors.
const DefaultEmbeddingModel = "text-embedding-3-large"

// Config holds configuration for the embedding service.
type Config struct {
	// APIType is the service dialect. Default: APITypeAzure
	APIType APIType

	// Endpoint is the base URL of the embedding service.
	// Example: "https://my-resource.openai.azure.com"
	Endpoint string

	// APIKey authenticates requests to the embedding service.
	APIKey string

	// APIVersion is the Azure REST API version. Ignored for APITypeOpenAI.
	APIVersion string

	// EmbeddingModel is the model (or Azure deployment) identifier.
	EmbeddingModel string

	// Dimensions is the expected length of every returned vector.
	// Default: 3072
	Dimensions int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIType sets the service dialect.
func WithAPIType(apiType APIType) ConfigOption {
	return func(c *Config) {
		c.APIType = apiType
	}
}

// WithEndpoint sets the embedding service base URL.
func WithEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithAPIKey sets the embedding service key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithAPIVersion sets the Azure REST API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithDimensions sets the expected vector length.
func WithDimensions(dims int) ConfigOption {
	return func(c *Config) {
		c.Dimensions = dims
	}
}

// DefaultConfig returns a Config targeting Azure OpenAI with text-embedding-3-large.
// Endpoint and APIKey have no defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		APIType:        APITypeAzure,
		APIVersion:     DefaultAPIVersion,
		EmbeddingModel: DefaultEmbeddingModel,
		Dimensions:     core.DefaultDimensions,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEndpoint("https://my-resource.openai.azure.com"),
//	    WithAPIKey(os.Getenv("AZURE_OPENAI_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes are removed from the endpoint. For OpenAI-compatible
// services the /v1 suffix is added if missing.
func (c *Config) Normalize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	c.Endpoint = strings.TrimSuffix(c.Endpoint, "/")
	if c.APIType == "" {
		c.APIType = APITypeAzure
	}
	if c.APIType == APITypeOpenAI && c.Endpoint != "" && !strings.HasSuffix(c.Endpoint, "/v1") {
		c.Endpoint = c.Endpoint + "/v1"
	}
	if c.APIType == APITypeAzure && c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIType != APITypeAzure && c.APIType != APITypeOpenAI {
		return errors.New("ai config: APIType must be \"azure\" or \"openai\"")
	}
	if c.Endpoint == "" {
		return errors.New("ai config: Endpoint is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.Dimensions < 1 {
		return errors.New("ai config: Dimensions must be greater than 0")
	}
	return nil
}
