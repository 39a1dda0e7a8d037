package web

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/lens/pkg/session"
	"github.com/adrianliechti/lens/pkg/text"
)

type page struct {
	Title   string
	Tagline string
	Logo    template.URL

	Idle   string
	Error  string
	Result template.HTML

	HasResult bool
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "")
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := page{
		Title:   h.Title,
		Tagline: h.Tagline,
		Logo:    h.logo,

		Idle:  idleMessage,
		Error: message,
	}

	if s, ok := session.FromContext(r.Context()); ok {
		if result, ok := s.Get(); ok {
			html, err := text.RenderMarkdown(result)

			if err != nil {
				slog.ErrorContext(r.Context(), "error rendering result", "error", err)
				html = template.HTML("<pre>" + template.HTMLEscapeString(result) + "</pre>")
			}

			data.Result = html
			data.HasResult = true
		}
	}

	var buf bytes.Buffer

	if err := h.page.Execute(&buf, data); err != nil {
		slog.ErrorContext(r.Context(), "error rendering page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	w.Write(buf.Bytes())
}
