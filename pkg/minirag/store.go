package minirag

import (
	"context"
	"maps"
	"sync"
)

// Store is an in-memory vector index over document chunks.
//
// chunks[i], embeddings[i] and metadata[i] always describe the same chunk;
// all three slices are guarded by one mutex so they grow in lock-step.
// All embeddings in a store must come from the same model, which the
// store does not check.
type Store struct {
	mu         sync.RWMutex
	chunks     []string
	embeddings [][]float32
	metadata   []Metadata
	chunkSize  int
}

// Option configures a Store
type Option func(*Store)

// WithChunkSize sets the paragraph packing threshold used by Ingest
func WithChunkSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest chunks every document, embeds each chunk and stores the ones that
// embedded successfully. meta[i], when present, is merged over the default
// {doc_id, chunk_id} record of every chunk from docs[i]. Chunks whose
// embedding comes back empty are skipped. Returns the number stored.
func (s *Store) Ingest(ctx context.Context, docs []string, meta []Metadata, embed EmbedFunc) int {
	count := 0
	for i, doc := range docs {
		for j, chunk := range ChunkText(doc, s.chunkSize) {
			vec := embed(ctx, chunk)
			if len(vec) == 0 {
				continue
			}

			md := Metadata{KeyDocID: i, KeyChunkID: j}
			if i < len(meta) {
				maps.Copy(md, meta[i])
			}

			s.add(chunk, vec, md)
			count++
		}
	}
	return count
}

func (s *Store) add(chunk string, vec []float32, md Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunk)
	s.embeddings = append(s.embeddings, vec)
	s.metadata = append(s.metadata, md)
}

// Clear drops every chunk, embedding and metadata record
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.embeddings = nil
	s.metadata = nil
}

// Len returns the number of stored chunks
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Stats reports the current chunk count
func (s *Store) Stats() Stats {
	return Stats{TotalChunks: s.Len()}
}
