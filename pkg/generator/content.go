package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/perbu/ragassist/pkg/minirag"
)

// Kind names a type of learning material.
type Kind string

// Supported content kinds
const (
	KindExplanation Kind = "explanation"
	KindQuiz        Kind = "quiz"
	KindPractice    Kind = "practice"
	KindStudyGuide  Kind = "study-guide"
	KindFlashcards  Kind = "flashcards"
)

// ErrUnknownKind is returned for a kind outside Kinds.
var ErrUnknownKind = errors.New("unknown content kind")

var kindPrompts = map[Kind]struct {
	system string
	task   string
}{
	KindExplanation: {
		system: "You are an expert teacher who explains concepts clearly with worked examples.",
		task:   "Write an explanation of %s with %d examples. Reply with JSON holding \"content\", \"examples\" and \"key_points\".",
	},
	KindQuiz: {
		system: "You are an assessment designer who writes fair multiple-choice questions.",
		task:   "Write a quiz on %s with %d questions. Reply with JSON holding \"questions\", each with \"question\", \"options\", \"answer\" and \"explanation\".",
	},
	KindPractice: {
		system: "You are a tutor who writes practice problems with step-by-step solutions.",
		task:   "Write practice problems on %s, %d of them. Reply with JSON holding \"problems\", each with \"problem\", \"hint\" and \"solution\".",
	},
	KindStudyGuide: {
		system: "You are a curriculum designer who writes concise study guides.",
		task:   "Write a study guide for %s covering about %d sections. Reply with JSON holding \"sections\" and \"summary\".",
	},
	KindFlashcards: {
		system: "You are a tutor who writes short flashcards for spaced repetition.",
		task:   "Write %[2]d flashcards on %[1]s. Reply with JSON holding \"cards\", each with \"front\" and \"back\".",
	},
}

// Kinds lists the supported content kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindExplanation, KindQuiz, KindPractice, KindStudyGuide, KindFlashcards}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kindPrompts[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Request describes one piece of content to generate.
type Request struct {
	Kind  Kind
	Topic string
	Level string
	Count int
	// Sources is the number of chunks retrieved as grounding.
	Sources int
}

// Content is generated material. Data holds the model's reply when it was
// a JSON object; Raw always holds the reply text.
type Content struct {
	Kind  Kind           `json:"type"`
	Topic string         `json:"topic"`
	Level string         `json:"level,omitempty"`
	Raw   string         `json:"raw"`
	Data  map[string]any `json:"data,omitempty"`
}

const defaultCount = 3

// GenerateContent retrieves context for req.Topic from store and asks gen
// for the requested kind of material.
func GenerateContent(ctx context.Context, store *minirag.Store, embed minirag.EmbedFunc, gen Generator, req Request) (Content, error) {
	p, ok := kindPrompts[req.Kind]
	if !ok {
		return Content{}, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	count := req.Count
	if count <= 0 {
		count = defaultCount
	}

	var prompt strings.Builder
	writeSources(&prompt, store.Context(ctx, req.Topic, req.Sources, embed))
	if req.Level != "" {
		fmt.Fprintf(&prompt, "Audience level: %s\n", req.Level)
	}
	fmt.Fprintf(&prompt, p.task, req.Topic, count)

	reply, err := gen.Generate(ctx, prompt.String(), p.system)
	if err != nil {
		return Content{}, fmt.Errorf("generating %s: %w", req.Kind, err)
	}

	c := Content{Kind: req.Kind, Topic: req.Topic, Level: req.Level, Raw: reply}
	var data map[string]any
	if json.Unmarshal([]byte(extractJSON(reply)), &data) == nil {
		c.Data = data
	}
	return c, nil
}

// extractJSON trims a fenced code block or surrounding prose off a reply.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
