package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/perbu/ragassist/pkg/minirag"
)

// KeyFilename is the metadata key holding a document's path relative to root
const KeyFilename = "filename"

// Extensions accepted by LoadDocuments
var Extensions = []string{".md", ".txt"}

// Document is a raw file read from disk
type Document struct {
	Path    string
	Content string
}

// LoadDocuments reads every markdown and text file under root, ordered by path
func LoadDocuments(fsys fs.FS, root string) ([]Document, error) {
	var docs []Document

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !slices.Contains(Extensions, strings.ToLower(path.Ext(p))) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		rel := p
		if root != "." {
			rel = strings.TrimPrefix(p, path.Clean(root)+"/")
		}

		docs = append(docs, Document{Path: rel, Content: string(content)})
		return nil
	})

	return docs, err
}

// LoadDir is LoadDocuments over a directory on the local filesystem
func LoadDir(dir string) ([]Document, error) {
	return LoadDocuments(os.DirFS(dir), ".")
}

// Batch turns documents into the aligned text and metadata slices that
// Store.Ingest expects. Each document carries its path as filename.
func Batch(docs []Document) ([]string, []minirag.Metadata) {
	texts := make([]string, len(docs))
	meta := make([]minirag.Metadata, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
		meta[i] = minirag.Metadata{KeyFilename: d.Path}
	}
	return texts, meta
}
