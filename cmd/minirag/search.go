package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perbu/ragassist/pkg/loader"
	"github.com/perbu/ragassist/pkg/minirag"
)

func newSearchCmd(f *rootFlags) *cobra.Command {
	var (
		top       int
		threshold float64
		full      bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank document chunks by similarity to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(f)
			if err != nil {
				return err
			}
			if err := s.ingest(cmd.Context()); err != nil {
				return err
			}

			n := top
			if n <= 0 {
				n = s.cfg.TopK
			}
			results := s.store.Search(cmd.Context(), strings.Join(args, " "), n, s.embed)
			printResults(cmd.OutOrStdout(), filterByScore(results, float32(threshold)), full)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "number of results to return (default from config)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.0, "minimum similarity score")
	cmd.Flags().BoolVar(&full, "full", false, "show full content instead of just paths")
	return cmd
}

func filterByScore(results []minirag.SearchResult, threshold float32) []minirag.SearchResult {
	kept := results[:0]
	for _, r := range results {
		if r.Score >= threshold {
			kept = append(kept, r)
		}
	}
	return kept
}

func printResults(w io.Writer, results []minirag.SearchResult, full bool) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}

	fmt.Fprintf(w, "Found %d results:\n\n", len(results))
	for i, result := range results {
		name, _ := result.Chunk.Metadata[loader.KeyFilename].(string)
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(w, "Score: %.2f | %s [chunk %v]\n", result.Score, name, result.Chunk.Metadata[minirag.KeyChunkID])

		if full {
			fmt.Fprintf(w, "\n%s\n", result.Chunk.Content)
			if i < len(results)-1 {
				fmt.Fprintln(w, "\n"+strings.Repeat("-", 80)+"\n")
			}
		}
	}
}
