package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const documentXMLName = "word/document.xml"

// zipEntry is one archive member, held decompressed in memory.
type zipEntry struct {
	name string
	data []byte
}

// textRun is the byte range of a complete <w:t> element (tags included)
// within word/document.xml.
type textRun struct {
	start int
	end   int
}

// paragraph is a body-level <w:p> element. Only the text runs are tracked;
// everything else (run properties, paragraph properties) is carried verbatim.
type paragraph struct {
	runs []textRun
}

// Docx is a .docx document. The parsed structure (archive entries, raw XML,
// run offsets) is immutable after loading; only the per-paragraph text state
// is mutable, which is what makes clones cheap and independent.
type Docx struct {
	entries []zipEntry
	docXML  []byte
	paras   []paragraph

	texts []string
	dirty []bool
}

// Open loads a .docx file from disk.
func Open(path string) (*Docx, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	doc, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load parses a .docx archive from memory.
func Load(data []byte) (*Docx, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	d := &Docx{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		d.entries = append(d.entries, zipEntry{name: f.Name, data: content})
		if f.Name == documentXMLName {
			d.docXML = content
		}
	}
	if d.docXML == nil {
		return nil, fmt.Errorf("%s not found in archive", documentXMLName)
	}

	if err := d.parse(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentXMLName, err)
	}
	return d, nil
}

// parse walks word/document.xml once, recording for every body paragraph the
// byte ranges of its <w:t> elements and its concatenated text. Paragraphs
// inside tables or drawings sit deeper than document>body>p and are left
// alone, matching how word processors address the document body.
func (d *Docx) parse() error {
	dec := xml.NewDecoder(bytes.NewReader(d.docXML))

	var (
		depth   int
		inPara  bool
		inText  bool
		cur     paragraph
		curText bytes.Buffer
		tStart  int
	)

	for {
		offset := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == wordMLNamespace {
				switch {
				case t.Name.Local == "p" && depth == 2:
					inPara = true
					cur = paragraph{}
					curText.Reset()
				case t.Name.Local == "t" && inPara:
					inText = true
					tStart = offset
				}
			}
			depth++

		case xml.CharData:
			if inText {
				curText.Write(t)
			}

		case xml.EndElement:
			depth--
			if t.Name.Space != wordMLNamespace {
				continue
			}
			switch {
			case t.Name.Local == "t" && inText:
				inText = false
				cur.runs = append(cur.runs, textRun{start: tStart, end: int(dec.InputOffset())})
			case t.Name.Local == "p" && depth == 2 && inPara:
				inPara = false
				d.paras = append(d.paras, cur)
				d.texts = append(d.texts, curText.String())
			}
		}
	}

	d.dirty = make([]bool, len(d.paras))
	return nil
}

// Paragraphs returns the number of body paragraphs.
func (d *Docx) Paragraphs() int { return len(d.paras) }

// Text returns the current text of paragraph i.
func (d *Docx) Text(i int) string { return d.texts[i] }

// SetText replaces the text of paragraph i. The new text lands in the
// paragraph's first text run; any further runs are blanked on save, so run
// formatting elements stay in place.
func (d *Docx) SetText(i int, text string) {
	d.texts[i] = text
	d.dirty[i] = true
}

// Clone returns an independent copy. The parsed structure is immutable and
// shared; the mutable text state is copied.
func (d *Docx) Clone() Document {
	c := &Docx{
		entries: d.entries,
		docXML:  d.docXML,
		paras:   d.paras,
		texts:   make([]string, len(d.texts)),
		dirty:   make([]bool, len(d.dirty)),
	}
	copy(c.texts, d.texts)
	copy(c.dirty, d.dirty)
	return c
}

// WriteTo serializes the document as a .docx archive. Every entry except
// word/document.xml is copied verbatim; within document.xml only the runs of
// modified paragraphs are rewritten.
func (d *Docx) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	for _, e := range d.entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return cw.n, fmt.Errorf("create %s: %w", e.name, err)
		}
		content := e.data
		if e.name == documentXMLName {
			content = d.rebuildDocumentXML()
		}
		if _, err := f.Write(content); err != nil {
			return cw.n, fmt.Errorf("write %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("close zip: %w", err)
	}
	return cw.n, nil
}

// Save writes the document to path.
func (d *Docx) Save(path string) error {
	return Save(d, path)
}

func (d *Docx) rebuildDocumentXML() []byte {
	var buf bytes.Buffer
	cursor := 0

	for i, p := range d.paras {
		if !d.dirty[i] || len(p.runs) == 0 {
			continue
		}

		first := p.runs[0]
		buf.Write(d.docXML[cursor:first.start])
		buf.WriteString(`<w:t xml:space="preserve">`)
		xml.EscapeText(&buf, []byte(d.texts[i]))
		buf.WriteString(`</w:t>`)
		cursor = first.end

		for _, r := range p.runs[1:] {
			buf.Write(d.docXML[cursor:r.start])
			buf.WriteString(`<w:t/>`)
			cursor = r.end
		}
	}

	buf.Write(d.docXML[cursor:])
	return buf.Bytes()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
