// Package config loads ragassist settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/perbu/ragassist/pkg/logger"
	"github.com/perbu/ragassist/pkg/minirag"
)

// Provider names
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderHash   = "hash"
)

const envPrefix = "RAGASSIST_"

// Errors returned by Validate
var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingAPIKey   = errors.New("OPENAI_API_KEY environment variable not set")
)

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level logger.LogLevel `yaml:"level"`
	JSON  bool            `yaml:"json"`
}

// Config holds everything needed to build embedders and generators.
// An empty BaseURL selects the provider's own default endpoint. Timeout
// bounds embedding requests and GenerateTimeout bounds generation.
type Config struct {
	Provider        string        `yaml:"provider"`
	BaseURL         string        `yaml:"base_url"`
	APIKey          string        `yaml:"-"`
	EmbedModel      string        `yaml:"embed_model"`
	ChatModel       string        `yaml:"chat_model"`
	Dimension       int           `yaml:"dimension"`
	ChunkSize       int           `yaml:"chunk_size"`
	TopK            int           `yaml:"top_k"`
	Timeout         time.Duration `yaml:"timeout"`
	GenerateTimeout time.Duration `yaml:"generate_timeout"`
	Log             LogConfig     `yaml:"log"`
}

// Default mirrors a local Ollama install running mistral
func Default() Config {
	return Config{
		Provider:        ProviderOllama,
		EmbedModel:      "mistral",
		ChatModel:       "mistral",
		Dimension:       256,
		ChunkSize:       minirag.DefaultChunkSize,
		TopK:            minirag.DefaultResults,
		Timeout:         30 * time.Second,
		GenerateTimeout: 180 * time.Second,
		Log:             LogConfig{Level: logger.InfoLevel},
	}
}

// Load builds a Config. path may be empty, in which case only defaults and
// the environment apply. A .env file in the working directory is loaded if
// present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
		return nil
	}

	setDuration := func(name string, dst *time.Duration) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
		return nil
	}

	setString("PROVIDER", &c.Provider)
	setString("BASE_URL", &c.BaseURL)
	setString("EMBED_MODEL", &c.EmbedModel)
	setString("CHAT_MODEL", &c.ChatModel)
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = logger.LogLevel(v)
	}
	if err := setInt("DIMENSION", &c.Dimension); err != nil {
		return err
	}
	if err := setInt("CHUNK_SIZE", &c.ChunkSize); err != nil {
		return err
	}
	if err := setInt("TOP_K", &c.TopK); err != nil {
		return err
	}
	if err := setDuration("TIMEOUT", &c.Timeout); err != nil {
		return err
	}
	if err := setDuration("GENERATE_TIMEOUT", &c.GenerateTimeout); err != nil {
		return err
	}
	c.APIKey = os.Getenv("OPENAI_API_KEY")
	return nil
}

// Validate reports the first setting that cannot produce a working setup.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOllama, ProviderHash:
	case ProviderOpenAI:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.Provider == ProviderHash && c.Dimension <= 0 {
		return fmt.Errorf("dimension must be positive, got %d", c.Dimension)
	}
	return nil
}
