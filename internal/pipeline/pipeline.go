// Package pipeline drives a full translation run: open the source document,
// translate it through the alignment engine, and persist whichever output
// clones the active provider and mode call for.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jenjoyx99/booktran/internal/backend"
	"github.com/jenjoyx99/booktran/internal/document"
	"github.com/jenjoyx99/booktran/internal/engine"
)

// Job describes one translation run.
type Job struct {
	InputPath  string
	OutputPath string
	TargetLang string
	Mode       backend.Mode
}

// Output is an in-memory result document, used by the web front end.
type Output struct {
	Name string
	Data []byte
}

// Pipeline binds a constructed backend to the engine. It holds no state
// across runs.
type Pipeline struct {
	backend backend.Backend
}

func New(b backend.Backend) *Pipeline {
	return &Pipeline{backend: b}
}

// Run translates the document at job.InputPath and writes the output
// file(s), returning their paths. A dual-output provider yields
// "<out>_literal.docx" and/or "<out>_poetic.docx" depending on mode; a
// direct provider writes job.OutputPath as given. Any error aborts the run
// before anything is written.
func (p *Pipeline) Run(ctx context.Context, job Job) ([]string, error) {
	src, err := document.Open(job.InputPath)
	if err != nil {
		return nil, err
	}

	literal, poetic, err := engine.Run(ctx, src, p.backend, job.TargetLang, job.Mode)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(job.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var saved []string
	for _, out := range selectOutputs(p.backend, job.Mode, literal, poetic) {
		path := job.OutputPath
		if out.suffix != "" {
			path = suffixPath(job.OutputPath, out.suffix)
		}
		if err := document.Save(out.doc, path); err != nil {
			return nil, err
		}
		saved = append(saved, path)
	}
	return saved, nil
}

// RunBytes is Run for in-memory documents: it takes the source archive as
// bytes and returns the serialized output document(s).
func (p *Pipeline) RunBytes(ctx context.Context, input []byte, targetLang string, mode backend.Mode) ([]Output, error) {
	src, err := document.Load(input)
	if err != nil {
		return nil, err
	}

	literal, poetic, err := engine.Run(ctx, src, p.backend, targetLang, mode)
	if err != nil {
		return nil, err
	}

	var outputs []Output
	for _, out := range selectOutputs(p.backend, mode, literal, poetic) {
		name := "translated.docx"
		if out.suffix != "" {
			name = fmt.Sprintf("translated_%s.docx", out.suffix)
		}
		var buf bytes.Buffer
		if _, err := out.doc.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", name, err)
		}
		outputs = append(outputs, Output{Name: name, Data: buf.Bytes()})
	}
	return outputs, nil
}

type selected struct {
	doc    document.Document
	suffix string
}

// selectOutputs decides which clones a run persists. Direct providers
// populate only the literal clone and produce a single unsuffixed output;
// dual-output providers produce one file per requested style.
func selectOutputs(b backend.Backend, mode backend.Mode, literal, poetic document.Document) []selected {
	if !b.DualOutput() {
		return []selected{{doc: literal}}
	}
	var outs []selected
	if mode == backend.ModeLiteral || mode == backend.ModeBoth {
		outs = append(outs, selected{doc: literal, suffix: "literal"})
	}
	if mode == backend.ModePoetic || mode == backend.ModeBoth {
		outs = append(outs, selected{doc: poetic, suffix: "poetic"})
	}
	return outs
}

// suffixPath turns "book.docx" into "book_literal.docx".
func suffixPath(path, suffix string) string {
	base := strings.TrimSuffix(path, ".docx")
	return fmt.Sprintf("%s_%s.docx", base, suffix)
}
