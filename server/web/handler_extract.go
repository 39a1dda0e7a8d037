package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/lens/pkg/extractor"
	"github.com/adrianliechti/lens/pkg/session"
)

const maxMemory = 10 << 20

var errNoFile = errors.New("no image uploaded")

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())

	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}

	file, err := readUpload(r)

	if err != nil {
		h.renderPage(w, r, http.StatusBadRequest, "Failed to process image: "+err.Error())
		return
	}

	if _, err := extractor.DetectImageType(*file); err != nil {
		h.renderPage(w, r, http.StatusUnsupportedMediaType, "Failed to process image: "+err.Error())
		return
	}

	e, err := h.Extractor("")

	if err != nil {
		slog.ErrorContext(r.Context(), "no extractor configured", "error", err)
		h.renderPage(w, r, http.StatusInternalServerError, "Failed to process image: "+err.Error())
		return
	}

	result, err := e.Extract(r.Context(), *file, nil)

	if err != nil {
		slog.ErrorContext(r.Context(), "error processing image", "file", file.Name, "error", err)
		h.renderPage(w, r, http.StatusBadGateway, "Failed to process image: "+err.Error())
		return
	}

	s.Set(result.Text)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		s.Clear()
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func readUpload(r *http.Request) (*extractor.File, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, errNoFile
		}

		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	file, header, err := r.FormFile("file")

	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errNoFile
		}

		return nil, fmt.Errorf("invalid upload: %w", err)
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errNoFile
	}

	return &extractor.File{
		Name: header.Filename,

		Content:     data,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
