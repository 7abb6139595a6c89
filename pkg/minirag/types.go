package minirag

import "context"

// Metadata is the key-value record attached to every stored chunk.
// doc_id and chunk_id are always present unless overridden by the caller.
type Metadata map[string]any

// Metadata keys set by Ingest
const (
	KeyDocID   = "doc_id"
	KeyChunkID = "chunk_id"
)

// Chunk represents a piece of a document with its content and metadata
type Chunk struct {
	Content  string   // The actual text content
	Metadata Metadata // doc_id, chunk_id plus caller metadata
}

// SearchResult represents a single search result with score
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// Stats reports the size of a Store
type Stats struct {
	TotalChunks int `json:"total_chunks"`
}

// EmbedFunc turns text into a vector. An empty result means the embedding
// is unavailable; implementations must not panic or block forever.
type EmbedFunc func(ctx context.Context, text string) []float32
