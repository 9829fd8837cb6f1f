package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jenjoyx99/booktran/internal/backend"
	"github.com/jenjoyx99/booktran/internal/document"
)

// buildDocx assembles a minimal .docx with one single-run paragraph per text.
func buildDocx(t *testing.T, texts ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, text := range texts {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(text)
		body.WriteString("</w:t></w:r></w:p>")
	}
	docXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := f.Write([]byte(docXML)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

type stubBackend struct {
	dual    bool
	literal string
	poetic  string
	err     error
}

func (s *stubBackend) Name() string     { return "stub" }
func (s *stubBackend) DualOutput() bool { return s.dual }

func (s *stubBackend) Translate(ctx context.Context, req backend.Request) (*backend.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	res := &backend.Result{Literal: s.literal}
	if s.dual {
		res.Poetic = s.poetic
	}
	return res, nil
}

func writeInput(t *testing.T, dir string, texts ...string) string {
	t.Helper()
	path := filepath.Join(dir, "input.docx")
	if err := os.WriteFile(path, buildDocx(t, texts...), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRun_DirectProvider(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Hello")
	output := filepath.Join(dir, "out.docx")

	p := New(&stubBackend{literal: "Bonjour"})
	saved, err := p.Run(context.Background(), Job{
		InputPath:  input,
		OutputPath: output,
		TargetLang: "fr",
		Mode:       backend.ModeBoth,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 1 || saved[0] != output {
		t.Fatalf("expected single output at %q, got %v", output, saved)
	}

	doc, err := document.Open(output)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	if got := doc.Text(0); got != "Bonjour" {
		t.Errorf("expected %q, got %q", "Bonjour", got)
	}
}

func TestRun_DualProviderBoth(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Hello")
	output := filepath.Join(dir, "out.docx")

	p := New(&stubBackend{dual: true, literal: "Bonjour", poetic: "Salut"})
	saved, err := p.Run(context.Background(), Job{
		InputPath:  input,
		OutputPath: output,
		TargetLang: "fr",
		Mode:       backend.ModeBoth,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLit := filepath.Join(dir, "out_literal.docx")
	wantPoe := filepath.Join(dir, "out_poetic.docx")
	if len(saved) != 2 || saved[0] != wantLit || saved[1] != wantPoe {
		t.Fatalf("expected [%q %q], got %v", wantLit, wantPoe, saved)
	}

	lit, err := document.Open(wantLit)
	if err != nil {
		t.Fatalf("failed to open literal output: %v", err)
	}
	poe, err := document.Open(wantPoe)
	if err != nil {
		t.Fatalf("failed to open poetic output: %v", err)
	}
	if lit.Text(0) != "Bonjour" || poe.Text(0) != "Salut" {
		t.Errorf("unexpected texts: literal %q, poetic %q", lit.Text(0), poe.Text(0))
	}
}

func TestRun_DualProviderSingleMode(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Hello")
	output := filepath.Join(dir, "out.docx")

	p := New(&stubBackend{dual: true, literal: "Bonjour"})
	saved, err := p.Run(context.Background(), Job{
		InputPath:  input,
		OutputPath: output,
		TargetLang: "fr",
		Mode:       backend.ModeLiteral,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved) != 1 || saved[0] != filepath.Join(dir, "out_literal.docx") {
		t.Fatalf("expected only the literal output, got %v", saved)
	}
	if _, err := os.Stat(filepath.Join(dir, "out_poetic.docx")); !os.IsNotExist(err) {
		t.Error("poetic output must not be written under mode=literal")
	}
}

func TestRun_BackendErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "Hello")
	output := filepath.Join(dir, "out.docx")

	p := New(&stubBackend{err: errors.New("backend down")})
	_, err := p.Run(context.Background(), Job{
		InputPath:  input,
		OutputPath: output,
		TargetLang: "fr",
		Mode:       backend.ModeBoth,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("no output file may exist after a failed run")
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	p := New(&stubBackend{literal: "x"})
	_, err := p.Run(context.Background(), Job{
		InputPath:  filepath.Join(dir, "missing.docx"),
		OutputPath: filepath.Join(dir, "out.docx"),
		TargetLang: "fr",
		Mode:       backend.ModeBoth,
	})
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestRunBytes_DualProvider(t *testing.T) {
	input := buildDocx(t, "Hello", "", "Bye")

	p := New(&stubBackend{dual: true, literal: "L", poetic: "P"})
	outputs, err := p.RunBytes(context.Background(), input, "fr", backend.ModeBoth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(outputs))
	}
	if outputs[0].Name != "translated_literal.docx" || outputs[1].Name != "translated_poetic.docx" {
		t.Errorf("unexpected names: %q, %q", outputs[0].Name, outputs[1].Name)
	}

	lit, err := document.Load(outputs[0].Data)
	if err != nil {
		t.Fatalf("failed to load literal output: %v", err)
	}
	if lit.Paragraphs() != 3 {
		t.Errorf("paragraph count not preserved: %d", lit.Paragraphs())
	}
	if lit.Text(1) != "" {
		t.Errorf("empty paragraph not preserved: %q", lit.Text(1))
	}
}

func TestRunBytes_DirectProvider(t *testing.T) {
	input := buildDocx(t, "Hello")

	p := New(&stubBackend{literal: "Hola"})
	outputs, err := p.RunBytes(context.Background(), input, "es", backend.ModeLiteral)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 1 || outputs[0].Name != "translated.docx" {
		t.Fatalf("expected single translated.docx, got %v", len(outputs))
	}
}

func TestSuffixPath(t *testing.T) {
	if got := suffixPath("book.docx", "literal"); got != "book_literal.docx" {
		t.Errorf("got %q", got)
	}
	if got := suffixPath("book", "poetic"); got != "book_poetic.docx" {
		t.Errorf("got %q", got)
	}
}
