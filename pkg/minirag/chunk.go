package minirag

import "strings"

const (
	// DefaultChunkSize is the paragraph packing threshold in characters
	DefaultChunkSize = 500

	paragraphSep = "\n\n"
)

// ChunkText splits text on blank lines and greedily packs paragraphs into
// chunks whose combined paragraph length stays within size. A paragraph is
// never split, so one longer than size becomes its own chunk. Paragraphs
// are rejoined with the original delimiter, so every chunk is a span of
// text. Chunks holding only whitespace are not emitted.
func ChunkText(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []string
	var current []string
	currentSize := 0

	flush := func() {
		if joined := strings.Join(current, paragraphSep); strings.TrimSpace(joined) != "" {
			chunks = append(chunks, joined)
		}
		current = current[:0]
		currentSize = 0
	}

	for _, para := range strings.Split(text, paragraphSep) {
		if currentSize+len(para) > size && len(current) > 0 {
			flush()
		}
		current = append(current, para)
		currentSize += len(para)
	}

	if len(current) > 0 {
		flush()
	}

	return chunks
}
