package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perbu/ragassist/pkg/embedder"
	"github.com/perbu/ragassist/pkg/generator"
)

// The original assistant fed three sources into generation
const defaultContextSources = 3

func newContextCmd(f *rootFlags) *cobra.Command {
	var sources int

	cmd := &cobra.Command{
		Use:   "context <query>",
		Short: "Print the retrieval context that would be sent to a model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(f)
			if err != nil {
				return err
			}
			if err := s.ingest(cmd.Context()); err != nil {
				return err
			}

			out := s.store.Context(cmd.Context(), strings.Join(args, " "), sources, s.embed)
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No results found")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&sources, "n", defaultContextSources, "number of sources to include")
	return cmd
}

func newAskCmd(f *rootFlags) *cobra.Command {
	var sources int

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question using the documents as context",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(f)
			if err != nil {
				return err
			}
			gen, err := generator.New(s.cfg)
			if err != nil {
				return fmt.Errorf("initializing generator: %w", err)
			}
			if err := s.ingest(cmd.Context()); err != nil {
				return err
			}

			answer, err := generator.Answer(cmd.Context(), s.store, s.embed, gen, strings.Join(args, " "), sources)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().IntVar(&sources, "n", defaultContextSources, "number of sources to include")
	return cmd
}

func newGenerateCmd(f *rootFlags) *cobra.Command {
	var (
		kind    string
		level   string
		count   int
		sources int
	)

	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate learning material on a topic, grounded by the documents",
		Long: fmt.Sprintf(`generate retrieves the chunks most relevant to the topic and asks the
language model for one kind of material. The reply is printed as JSON.

Kinds: %s`, kindList()),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := generator.ParseKind(kind)
			if err != nil {
				return err
			}
			s, err := newSession(f)
			if err != nil {
				return err
			}
			gen, err := generator.New(s.cfg)
			if err != nil {
				return fmt.Errorf("initializing generator: %w", err)
			}
			if err := s.ingest(cmd.Context()); err != nil {
				return err
			}

			content, err := generator.GenerateContent(cmd.Context(), s.store, s.embed, gen, generator.Request{
				Kind:    k,
				Topic:   strings.Join(args, " "),
				Level:   level,
				Count:   count,
				Sources: sources,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(content)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(generator.KindExplanation), "kind of material: "+kindList())
	cmd.Flags().StringVar(&level, "level", "", "audience level, e.g. beginner")
	cmd.Flags().IntVar(&count, "count", 0, "number of items such as questions or cards")
	cmd.Flags().IntVar(&sources, "n", defaultContextSources, "number of sources to include")
	return cmd
}

func kindList() string {
	kinds := generator.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func newStatsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Ingest the documents and report the chunk count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(f)
			if err != nil {
				return err
			}
			if err := s.ingest(cmd.Context()); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s.store.Stats())
		},
	}
}

func newModelsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models installed on the Ollama server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(f)
			if err != nil {
				return err
			}
			ollama, ok := s.emb.(*embedder.OllamaEmbedder)
			if !ok {
				return errors.New("models is only available with the ollama provider")
			}

			names, err := ollama.Models(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
