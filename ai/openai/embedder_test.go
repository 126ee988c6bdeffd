package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/poiesic/profindex/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	path   string
	query  string
	apiKey string
	auth   string
}

// newEmbeddingServer answers every embeddings request with one fixed vector per input.
func newEmbeddingServer(t *testing.T, vector []float32) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var mu sync.Mutex
	var captured []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		captured = append(captured, capturedRequest{
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			apiKey: r.Header.Get("api-key"),
			auth:   r.Header.Get("Authorization"),
		})
		mu.Unlock()

		var body struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		n := len(body.Input)
		if n == 0 {
			n = 1
		}

		data := make([]map[string]any, n)
		for i := range data {
			data[i] = map[string]any{"object": "embedding", "index": i, "embedding": vector}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  "test",
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	t.Cleanup(srv.Close)

	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), captured...)
	}
}

func TestNewEmbedder_InvalidConfig(t *testing.T) {
	_, err := NewEmbedder(ai.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Endpoint")
}

func TestEmbedder_OpenAICompatible(t *testing.T) {
	srv, requests := newEmbeddingServer(t, []float32{0.1, 0.2, 0.3})

	embedder, err := NewEmbedder(ai.NewConfig(
		ai.WithAPIType(ai.APITypeOpenAI),
		ai.WithEndpoint(srv.URL),
		ai.WithAPIKey("secret"),
		ai.WithEmbeddingModel("test-embed"),
		ai.WithDimensions(3),
	))
	require.NoError(t, err)
	assert.Equal(t, "test-embed", embedder.Model())

	vector, err := embedder.EmbedText(context.Background(), `{"氏名":"田中太郎"}`)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3}, vector, 1e-6)

	reqs := requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "/v1/embeddings", reqs[0].path)
	assert.Equal(t, "Bearer secret", reqs[0].auth)
}

func TestEmbedder_Azure(t *testing.T) {
	srv, requests := newEmbeddingServer(t, []float32{1, 0})

	embedder, err := NewEmbedder(ai.NewConfig(
		ai.WithEndpoint(srv.URL),
		ai.WithAPIKey("azure-key"),
		ai.WithDimensions(2),
	))
	require.NoError(t, err)

	vector, err := embedder.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vector, 2)

	reqs := requests()
	require.NotEmpty(t, reqs)
	assert.Contains(t, reqs[0].path, "/openai/deployments/text-embedding-3-large/embeddings")
	assert.Contains(t, reqs[0].query, "api-version=2023-07-01-preview")
	assert.Equal(t, "azure-key", reqs[0].apiKey)
}

func TestEmbedder_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	embedder, err := NewEmbedder(ai.NewConfig(
		ai.WithAPIType(ai.APITypeOpenAI),
		ai.WithEndpoint(srv.URL),
		ai.WithAPIKey("bad"),
	))
	require.NoError(t, err)

	_, err = embedder.EmbedText(context.Background(), "hello")
	require.Error(t, err)
}
