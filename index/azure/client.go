package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
)

// Client talks to one Azure AI Search index.
type Client struct {
	endpoint   string
	apiKey     string
	indexName  string
	apiVersion string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ index.Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client bound to config.IndexName.
func NewClient(config *index.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Backend != index.BackendAzure {
		return nil, fmt.Errorf("azure: %w: %q", index.ErrUnknownBackend, config.Backend)
	}

	c := &Client{
		endpoint:   config.Endpoint,
		apiKey:     config.APIKey,
		indexName:  config.IndexName,
		apiVersion: config.APIVersion,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "azure-search", "index", c.indexName)
	return c, nil
}

// CreateOrUpdateIndex applies schema with PUT /indexes/{name}.
func (c *Client) CreateOrUpdateIndex(ctx context.Context, schema *index.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if schema.Name != c.indexName {
		return fmt.Errorf("%w: schema %q, store %q", index.ErrIndexMismatch, schema.Name, c.indexName)
	}

	c.logger.Info("applying index definition", "dimensions", schema.Dimensions())
	status, _, err := c.do(ctx, "create index", http.MethodPut, "/indexes/"+url.PathEscape(c.indexName), toIndexDefinition(schema))
	if err != nil {
		return err
	}
	c.logger.Debug("index definition applied", "status", status)
	return nil
}

// UploadDocuments stores docs in one request using the upload action.
func (c *Client) UploadDocuments(ctx context.Context, docs []core.Document) (*index.UploadResult, error) {
	if len(docs) == 0 {
		return &index.UploadResult{}, nil
	}

	path := "/indexes/" + url.PathEscape(c.indexName) + "/docs/index"
	status, body, err := c.do(ctx, "upload", http.MethodPost, path, toUploadRequest(docs))
	if err != nil {
		return nil, err
	}

	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &index.ServiceError{Op: "upload", StatusCode: status, Message: "decode response: " + err.Error()}
	}

	result := &index.UploadResult{}
	for _, s := range resp.Value {
		if s.Status {
			result.Succeeded++
			continue
		}
		msg := ""
		if s.ErrorMessage != nil {
			msg = *s.ErrorMessage
		}
		result.Failed = append(result.Failed, index.DocumentFailure{
			Key:        s.Key,
			StatusCode: s.StatusCode,
			Message:    msg,
		})
	}
	c.logger.Debug("uploaded documents", "status", status, "succeeded", result.Succeeded, "failed", len(result.Failed))
	return result, nil
}

// SearchVector runs a pure vector query against the vector field.
func (c *Client) SearchVector(ctx context.Context, vector []float32, k int) ([]core.SearchHit, error) {
	if k < 1 {
		return nil, nil
	}
	req := searchRequest{
		Select: index.FieldID + "," + index.FieldJSONData,
		Top:    k,
		VectorQueries: []vectorQuery{
			{Kind: "vector", Vector: vector, Fields: index.FieldVector, K: k},
		},
	}

	path := "/indexes/" + url.PathEscape(c.indexName) + "/docs/search"
	status, body, err := c.do(ctx, "search", http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &index.ServiceError{Op: "search", StatusCode: status, Message: "decode response: " + err.Error()}
	}

	hits := make([]core.SearchHit, len(resp.Value))
	for i, r := range resp.Value {
		hits[i] = core.SearchHit{ID: r.ID, Score: r.Score, JSONData: r.JSONData}
	}
	return hits, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// do sends a JSON request and returns the status and body of a 2xx response.
// Any other outcome becomes an *index.ServiceError.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: marshal request: %w", op, err)
	}

	u := c.endpoint + path + "?api-version=" + url.QueryEscape(c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &index.ServiceError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &index.ServiceError{Op: op, StatusCode: resp.StatusCode, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("request rejected", "op", op, "status", resp.StatusCode)
		return resp.StatusCode, body, &index.ServiceError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return resp.StatusCode, body, nil
}

// errorMessage extracts error.message from an Azure error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		if er.Error.Code != "" {
			return er.Error.Code + ": " + er.Error.Message
		}
		return er.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response"
	}
	return msg
}
