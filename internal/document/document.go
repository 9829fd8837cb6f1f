// Package document loads paragraph-structured .docx files and writes them
// back with selected paragraph texts replaced, leaving every other byte of
// the archive untouched so styles and formatting survive the round trip.
package document

import (
	"fmt"
	"io"
	"os"
)

// Document is a paragraph-addressable view of a loaded file. Paragraphs are
// identified by their position in the document body, stable for the
// document's lifetime.
type Document interface {
	// Paragraphs returns the number of body paragraphs.
	Paragraphs() int
	// Text returns the current text of paragraph i.
	Text(i int) string
	// SetText replaces the text of paragraph i. Formatting is untouched.
	SetText(i int, text string)
	// Clone returns a structurally identical, independent copy. Mutating
	// the clone never affects the receiver or any other clone.
	Clone() Document
	// WriteTo serializes the document.
	WriteTo(w io.Writer) (int64, error)
}

// Save writes doc to path.
func Save(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	return f.Close()
}
