package generator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "mistral"

	// DefaultTimeout bounds a single generation request.
	DefaultTimeout = 180 * time.Second

	defaultTemperature = 0.7
)

// defaultOptions returns the sampling options sent with every Ollama
// generate request.
func defaultOptions() map[string]any {
	return map[string]any{
		"temperature": defaultTemperature,
		"num_predict": 500,
		"num_ctx":     2048,
	}
}

// OllamaGenerator calls Ollama's generate endpoint without streaming.
type OllamaGenerator struct {
	model     string
	client    *api.Client
	clientErr error
}

// NewOllamaGenerator returns a generator for model served at baseURL. Empty
// values select the local defaults and a non-positive timeout selects
// DefaultTimeout. An unparsable base URL is reported by Generate.
func NewOllamaGenerator(baseURL, model string, timeout time.Duration) *OllamaGenerator {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	g := &OllamaGenerator{model: model}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		g.clientErr = fmt.Errorf("invalid Ollama API URL %q: %w", baseURL, err)
		return g
	}
	g.client = api.NewClient(base, &http.Client{Timeout: timeout})
	return g
}

// Generate sends prompt with an optional system message and returns the
// model's full response.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	if g.clientErr != nil {
		return "", g.clientErr
	}

	stream := false
	var out strings.Builder
	err := g.client.Generate(ctx, &api.GenerateRequest{
		Model:   g.model,
		Prompt:  prompt,
		System:  system,
		Stream:  &stream,
		Options: defaultOptions(),
	}, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	if out.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return out.String(), nil
}
