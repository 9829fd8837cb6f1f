// Package web serves the interactive upload form. It is a thin front end:
// collect inputs, run the pipeline, offer the result for download. Every
// error is caught at the handler boundary and rendered inline, since the
// server is long-lived.
package web

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jenjoyx99/booktran/internal/backend"
	"github.com/jenjoyx99/booktran/internal/pipeline"
	"github.com/jenjoyx99/booktran/internal/store"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// maxUploadBytes bounds the multipart form size.
const maxUploadBytes = 64 << 20

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>booktran</title></head>
<body>
<h1>Book translation</h1>
<p>Upload a .docx file; formatting is preserved paragraph by paragraph.</p>
{{if .Error}}<p style="color:#b00">{{.Error}}</p>{{end}}
<form method="post" action="/translate" enctype="multipart/form-data">
<p><input type="file" name="document" accept=".docx" required></p>
<p>Target language code:
<input type="text" name="language" value="fr" required></p>
<p>Provider:
<select name="provider">
<option value="openai">openai</option>
<option value="google">google</option>
<option value="deepl">deepl</option>
</select></p>
<p>Mode (openai only):
<select name="mode">
<option value="both">both</option>
<option value="literal">literal</option>
<option value="poetic">poetic</option>
</select></p>
<p><button type="submit">Translate</button></p>
</form>
</body>
</html>
`))

// Server handles the upload form. Credentials come in as an explicit
// Config; the glossary store is optional.
type Server struct {
	cfg      backend.Config
	glossary *store.Store
	logger   *slog.Logger
	router   chi.Router
}

func NewServer(cfg backend.Config, glossary *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, glossary: glossary, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Post("/translate", s.handleTranslate)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "")
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderPage(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}

	file, _, err := r.FormFile("document")
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, "no document uploaded")
		return
	}
	defer file.Close()

	input, err := io.ReadAll(file)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	provider := r.FormValue("provider")
	targetLang := r.FormValue("language")
	if targetLang == "" {
		s.renderPage(w, http.StatusBadRequest, "target language is required")
		return
	}
	mode, err := backend.ParseMode(r.FormValue("mode"))
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	var glossary map[string]string
	if s.glossary != nil {
		glossary, err = s.glossary.TermMap(ctx, "en", targetLang)
		if err != nil {
			s.renderPage(w, http.StatusInternalServerError, "glossary lookup failed: "+err.Error())
			return
		}
	}

	b, err := backend.New(ctx, provider, s.cfg, glossary)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, err.Error())
		return
	}
	if c, ok := b.(io.Closer); ok {
		defer c.Close()
	}

	outputs, err := pipeline.New(b).RunBytes(ctx, input, targetLang, mode)
	if err != nil {
		s.logger.Error("translation failed", "provider", provider, "target", targetLang, "error", err)
		s.renderPage(w, http.StatusBadGateway, "translation failed: "+err.Error())
		return
	}

	s.logger.Info("translation complete",
		"provider", provider, "target", targetLang, "mode", string(mode), "outputs", len(outputs))

	if len(outputs) == 1 {
		w.Header().Set("Content-Type", docxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputs[0].Name))
		w.Write(outputs[0].Data)
		return
	}

	// Two clones: bundle them so a single download carries both styles.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, out := range outputs {
		f, err := zw.Create(out.Name)
		if err == nil {
			_, err = f.Write(out.Data)
		}
		if err != nil {
			s.renderPage(w, http.StatusInternalServerError, "failed to bundle outputs: "+err.Error())
			return
		}
	}
	if err := zw.Close(); err != nil {
		s.renderPage(w, http.StatusInternalServerError, "failed to bundle outputs: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="translated.zip"`)
	w.Write(buf.Bytes())
}

func (s *Server) renderPage(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, struct{ Error string }{Error: errMsg}); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}
