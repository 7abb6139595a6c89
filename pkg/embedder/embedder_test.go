package embedder

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perbu/ragassist/pkg/config"
	"github.com/perbu/ragassist/pkg/logger"
	"github.com/perbu/ragassist/pkg/minirag"
)

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("connection refused")
}
func (failingEmbedder) Dimension() int    { return 0 }
func (failingEmbedder) ModelInfo() string { return "failing" }

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestHashEmbedder(t *testing.T) {
	e := NewHashEmbedder(64)

	t.Run("Should be deterministic and unit length", func(t *testing.T) {
		a, err := e.Embed(t.Context(), "The quick brown fox")
		require.NoError(t, err)
		b, err := e.Embed(t.Context(), "the QUICK brown fox!")
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Len(t, a, 64)
		assert.InDelta(t, 1.0, norm(a), 1e-6)
	})

	t.Run("Should rank overlapping text higher", func(t *testing.T) {
		e := NewHashEmbedder(1024)
		q, _ := e.Embed(t.Context(), "pythagorean theorem triangle")
		near, _ := e.Embed(t.Context(), "the pythagorean theorem relates triangle sides")
		far, _ := e.Embed(t.Context(), "binary search trees store keys")

		assert.Greater(t, minirag.CosineSimilarity(q, near), minirag.CosineSimilarity(q, far))
	})

	t.Run("Should fail on text without words", func(t *testing.T) {
		_, err := e.Embed(t.Context(), "  ... \n")
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("Should fall back to the default dimension", func(t *testing.T) {
		assert.Equal(t, DefaultHashDimension, NewHashEmbedder(0).Dimension())
	})
}

func TestFunc(t *testing.T) {
	t.Run("Should turn errors into empty vectors", func(t *testing.T) {
		embed := Func(failingEmbedder{}, nil)
		assert.Empty(t, embed(t.Context(), "anything"))
	})

	t.Run("Should log failures through the context logger", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logger.ContextWithLogger(t.Context(), logger.NewLogger(&logger.Config{
			Level:  logger.DebugLevel,
			Output: &buf,
		}))

		assert.Empty(t, Func(failingEmbedder{}, nil)(ctx, "anything"))
		assert.Contains(t, buf.String(), "embedding unavailable")
		assert.Contains(t, buf.String(), "connection refused")
	})

	t.Run("Should let a store skip failed chunks", func(t *testing.T) {
		store := minirag.NewStore()
		embed := Func(NewHashEmbedder(32), nil)

		n := store.Ingest(t.Context(), []string{"real words here", "!!!"}, nil, embed)

		assert.Equal(t, 1, n)
	})
}

func TestNew(t *testing.T) {
	t.Run("Should build each provider", func(t *testing.T) {
		cfg := config.Default()

		e, err := New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &OllamaEmbedder{}, e)
		assert.Equal(t, "ollama-mistral", e.ModelInfo())

		cfg.Provider = config.ProviderHash
		e, err = New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &HashEmbedder{}, e)

		cfg.Provider = config.ProviderOpenAI
		cfg.APIKey = "sk-test"
		cfg.EmbedModel = "text-embedding-3-large"
		e, err = New(cfg)
		require.NoError(t, err)
		assert.Equal(t, 3072, e.Dimension())
	})

	t.Run("Should reject unknown providers", func(t *testing.T) {
		cfg := config.Default()
		cfg.Provider = "nope"

		_, err := New(cfg)

		assert.ErrorIs(t, err, config.ErrUnknownProvider)
	})
}
