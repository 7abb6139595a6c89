// Package generator sends prompts, optionally grounded by store context,
// to a language model.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/perbu/ragassist/pkg/config"
	"github.com/perbu/ragassist/pkg/minirag"
)

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("model returned an empty response")

// Generator produces text for a prompt. system may be empty.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// New builds the generator matching cfg.Provider, bounded by
// cfg.GenerateTimeout. The hash provider has no language model behind it
// and is rejected.
func New(cfg config.Config) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllamaGenerator(cfg.BaseURL, cfg.ChatModel, cfg.GenerateTimeout), nil
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(cfg.APIKey, cfg.ChatModel, cfg.BaseURL, cfg.GenerateTimeout)
	default:
		return nil, fmt.Errorf("%w: %q has no generation backend", config.ErrUnknownProvider, cfg.Provider)
	}
}

const answerSystem = "You are a technical assistant. Answer using the provided sources when they are relevant."

// Answer retrieves the n most relevant chunks for question and asks gen to
// answer with them as context. With nothing retrieved the question is sent
// alone.
func Answer(ctx context.Context, store *minirag.Store, embed minirag.EmbedFunc, gen Generator, question string, n int) (string, error) {
	var prompt strings.Builder
	writeSources(&prompt, store.Context(ctx, question, n, embed))
	prompt.WriteString("Question: ")
	prompt.WriteString(question)

	answer, err := gen.Generate(ctx, prompt.String(), answerSystem)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}

func writeSources(b *strings.Builder, sources string) {
	if sources == "" {
		return
	}
	b.WriteString("Context:\n")
	b.WriteString(sources)
	b.WriteString("\n")
}
