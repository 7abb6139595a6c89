package embedder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultOllamaURL is the default Ollama API endpoint.
	DefaultOllamaURL = "http://localhost:11434"

	// DefaultOllamaModel is the default embedding model.
	DefaultOllamaModel = "mistral"

	// DefaultTimeout is the timeout for embedding requests.
	DefaultTimeout = 30 * time.Second
)

// OllamaEmbedder generates embeddings using a local Ollama server.
type OllamaEmbedder struct {
	baseURL    string
	model      string
	dim        atomic.Int64
	httpClient *http.Client

	client    *api.Client
	clientErr error
}

// OllamaOption configures an OllamaEmbedder.
type OllamaOption func(*OllamaEmbedder)

// WithBaseURL sets the Ollama API base URL.
func WithBaseURL(url string) OllamaOption {
	return func(e *OllamaEmbedder) {
		e.baseURL = strings.TrimRight(url, "/")
	}
}

// WithModel sets the embedding model.
func WithModel(model string) OllamaOption {
	return func(e *OllamaEmbedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) OllamaOption {
	return func(e *OllamaEmbedder) {
		if timeout > 0 {
			e.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) OllamaOption {
	return func(e *OllamaEmbedder) {
		e.httpClient = c
	}
}

// NewOllamaEmbedder creates a new Ollama embedder. An unparsable base URL
// is reported by every call rather than here.
func NewOllamaEmbedder(opts ...OllamaOption) *OllamaEmbedder {
	e := &OllamaEmbedder{
		baseURL:    DefaultOllamaURL,
		model:      DefaultOllamaModel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}

	base, err := url.Parse(e.baseURL)
	if err != nil {
		e.clientErr = fmt.Errorf("invalid Ollama API URL %q: %w", e.baseURL, err)
		return e
	}
	e.client = api.NewClient(base, e.httpClient)
	return e
}

// Embed generates an embedding for the given text. The first successful
// call fixes the reported dimension.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if e.clientErr != nil {
		return nil, e.clientErr
	}

	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embeddings request failed: %w", err)
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned an empty embedding for model %s", e.model)
	}

	vec := make([]float32, len(resp.Embedding))
	for i, x := range resp.Embedding {
		vec[i] = float32(x)
	}

	e.dim.CompareAndSwap(0, int64(len(vec)))
	return vec, nil
}

// Models lists the models installed on the Ollama server.
func (e *OllamaEmbedder) Models(ctx context.Context) ([]string, error) {
	if e.clientErr != nil {
		return nil, e.clientErr
	}

	resp, err := e.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama is not running: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Dimension returns the vector size seen so far, 0 before the first call.
func (e *OllamaEmbedder) Dimension() int {
	return int(e.dim.Load())
}

// ModelInfo returns model information
func (e *OllamaEmbedder) ModelInfo() string {
	return "ollama-" + e.model
}
