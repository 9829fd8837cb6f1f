// Package engine walks a source document paragraph by paragraph and writes
// translations into structurally identical clones, keeping every output
// aligned with the source by index.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/jenjoyx99/booktran/internal/backend"
	"github.com/jenjoyx99/booktran/internal/document"
)

// Run translates src into targetLang using b and returns two clones: the
// literal rendering and the poetic rendering. Both clones are always
// produced, with the same paragraph count and formatting as the source,
// regardless of provider; the caller decides which to persist.
//
// Paragraphs are processed sequentially in index order. A paragraph whose
// trimmed text is empty becomes empty in both clones and is never sent to
// the backend. On a dual-output backend a returned side is assigned only
// when non-empty, so a mode-blanked side leaves the clone's source text in
// place. On a single-output backend only the literal clone is written.
//
// The first backend error aborts the run; no documents are returned.
func Run(ctx context.Context, src document.Document, b backend.Backend, targetLang string, mode backend.Mode) (document.Document, document.Document, error) {
	literal := src.Clone()
	poetic := src.Clone()

	for i := 0; i < src.Paragraphs(); i++ {
		text := src.Text(i)

		if strings.TrimSpace(text) == "" {
			literal.SetText(i, "")
			poetic.SetText(i, "")
			continue
		}

		res, err := b.Translate(ctx, backend.Request{
			Text:       text,
			TargetLang: targetLang,
			Mode:       mode,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("paragraph %d: %w", i, err)
		}

		if b.DualOutput() {
			if res.Literal != "" {
				literal.SetText(i, res.Literal)
			}
			if res.Poetic != "" {
				poetic.SetText(i, res.Poetic)
			}
		} else {
			literal.SetText(i, res.Literal)
		}
	}

	return literal, poetic, nil
}
