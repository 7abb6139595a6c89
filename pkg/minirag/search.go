package minirag

import (
	"context"
	"fmt"
	"maps"
	"math"
	"sort"
	"strings"
)

// DefaultResults is the number of results Search returns when n <= 0
const DefaultResults = 5

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 and 1, or exactly 0 when the lengths differ
// or either vector has zero magnitude.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	// rounding can push identical vectors a hair past 1
	return float32(math.Max(-1, math.Min(1, sim)))
}

// Search embeds the query and returns up to n stored chunks ranked by
// cosine similarity, highest first. Chunks with equal scores keep their
// insertion order. An empty store or a failed query embedding yields nil.
func (s *Store) Search(ctx context.Context, query string, n int, embed EmbedFunc) []SearchResult {
	if n <= 0 {
		n = DefaultResults
	}

	// Skip the embedding call entirely when there is nothing to rank
	if s.Len() == 0 {
		return nil
	}

	queryEmbedding := embed(ctx, query)
	if len(queryEmbedding) == 0 {
		return nil
	}

	s.mu.RLock()
	results := make([]SearchResult, 0, len(s.chunks))
	for i := range s.chunks {
		results = append(results, SearchResult{
			Chunk: Chunk{Content: s.chunks[i], Metadata: maps.Clone(s.metadata[i])},
			Score: CosineSimilarity(queryEmbedding, s.embeddings[i]),
		})
	}
	s.mu.RUnlock()

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if n < len(results) {
		results = results[:n]
	}

	return results
}

// Context renders the top n search results as labeled blocks suitable for
// feeding a generation step. Returns "" when there are no results.
func (s *Store) Context(ctx context.Context, query string, n int, embed EmbedFunc) string {
	results := s.Search(ctx, query, n, embed)
	if len(results) == 0 {
		return ""
	}

	lines := make([]string, 0, len(results)*3)
	for i, r := range results {
		lines = append(lines,
			fmt.Sprintf("[Source %d] (Relevance: %.1f%%)", i+1, float64(r.Score)*100),
			r.Chunk.Content,
			"",
		)
	}
	return strings.Join(lines, "\n")
}
