// Package fs provides file-based persistence for crawl results.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/crawldoc"
)

// Ensure DocumentWriter implements crawldoc.DocumentWriter at compile time.
var _ crawldoc.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter writes extracted documents as a single JSON file and,
// optionally, as one markdown file per document.
type DocumentWriter struct {
	path  string
	mdDir string
}

// NewDocumentWriter creates a DocumentWriter that writes the document
// list to path. When mdDir is non-empty each document is additionally
// written as a markdown file in that directory.
func NewDocumentWriter(path, mdDir string) *DocumentWriter {
	return &DocumentWriter{path: path, mdDir: mdDir}
}

// MarkdownFileName derives the markdown file name for a document URL.
func MarkdownFileName(url string) string {
	return strings.ReplaceAll(url, "/", "_") + ".md"
}

// WriteDocuments persists the document list. The JSON shape is an array
// of {"page_content": ..., "metadata": {"url": ...}} objects.
func (w *DocumentWriter) WriteDocuments(ctx context.Context, docs []*crawldoc.Document) error {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return err
	}

	if w.mdDir == "" {
		return nil
	}
	if err := os.MkdirAll(w.mdDir, 0755); err != nil {
		return err
	}
	for _, doc := range docs {
		name := MarkdownFileName(doc.Metadata.URL)
		if err := os.WriteFile(filepath.Join(w.mdDir, name), []byte(doc.PageContent), 0644); err != nil {
			return err
		}
	}
	return nil
}
