package embedder

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/perbu/ragassist/pkg/config"
	"github.com/perbu/ragassist/pkg/logger"
	"github.com/perbu/ragassist/pkg/minirag"
)

// ErrEmptyText is returned when asked to embed an empty string
var ErrEmptyText = errors.New("cannot embed empty text")

// Embedder interface for generating embeddings
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	ModelInfo() string
}

// Func adapts an Embedder to the store's never-failing contract: any error
// is logged and reported as an empty vector. A nil log falls back to the
// logger carried by the call's context.
func Func(e Embedder, log logger.Logger) minirag.EmbedFunc {
	return func(ctx context.Context, text string) []float32 {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			l := log
			if l == nil {
				l = logger.FromContext(ctx)
			}
			l.Debug("embedding unavailable", "model", e.ModelInfo(), "chars", len(text), "err", err)
			return nil
		}
		return vec
	}
}

// New builds the embedder selected by cfg.Provider
func New(cfg config.Config) (Embedder, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		opts := []OllamaOption{WithModel(cfg.EmbedModel), WithTimeout(cfg.Timeout)}
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		return NewOllamaEmbedder(opts...), nil
	case config.ProviderOpenAI:
		return NewOpenAIEmbedder(cfg.APIKey, cfg.EmbedModel, cfg.BaseURL)
	case config.ProviderHash:
		return NewHashEmbedder(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

// l2normalize normalizes a vector to unit length
func l2normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
