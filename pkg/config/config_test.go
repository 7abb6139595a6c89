package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perbu/ragassist/pkg/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ragassist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without a file", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Should read values from YAML", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		path := writeConfig(t, `
provider: hash
dimension: 64
chunk_size: 300
top_k: 3
timeout: 5s
generate_timeout: 2m
log:
  level: debug
  json: true
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ProviderHash, cfg.Provider)
		assert.Equal(t, 64, cfg.Dimension)
		assert.Equal(t, 300, cfg.ChunkSize)
		assert.Equal(t, 3, cfg.TopK)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 2*time.Minute, cfg.GenerateTimeout)
		assert.Equal(t, logger.DebugLevel, cfg.Log.Level)
		assert.True(t, cfg.Log.JSON)
		assert.Equal(t, "mistral", cfg.EmbedModel)
	})

	t.Run("Should let the environment override the file", func(t *testing.T) {
		path := writeConfig(t, "provider: hash\nchunk_size: 300\n")
		t.Setenv("RAGASSIST_PROVIDER", "openai")
		t.Setenv("RAGASSIST_CHUNK_SIZE", "800")
		t.Setenv("RAGASSIST_BASE_URL", "http://llm.internal/v1")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, 800, cfg.ChunkSize)
		assert.Equal(t, "http://llm.internal/v1", cfg.BaseURL)
		assert.Equal(t, "sk-test", cfg.APIKey)
	})

	t.Run("Should read the generate timeout from the environment", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("RAGASSIST_GENERATE_TIMEOUT", "45s")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, cfg.GenerateTimeout)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("Should reject malformed durations in the environment", func(t *testing.T) {
		t.Setenv("RAGASSIST_GENERATE_TIMEOUT", "soon")

		_, err := Load("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "RAGASSIST_GENERATE_TIMEOUT")
	})

	t.Run("Should reject malformed numbers in the environment", func(t *testing.T) {
		t.Setenv("RAGASSIST_TOP_K", "many")

		_, err := Load("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "RAGASSIST_TOP_K")
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "bedrock" },
			wantErr: ErrUnknownProvider,
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) { c.Provider = ProviderOpenAI },
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "openai with key",
			mutate: func(c *Config) {
				c.Provider = ProviderOpenAI
				c.APIKey = "sk-test"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("non-positive chunk size", func(t *testing.T) {
		cfg := Default()
		cfg.ChunkSize = 0
		assert.Error(t, cfg.Validate())
	})
}
