package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/lens/pkg/extractor"
	"github.com/adrianliechti/lens/pkg/session"
)

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())

	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("no session"))
		return
	}

	e, err := h.Extractor(valueExtractor(r))

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	file, err := readFile(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(file.Content) == 0 {
		writeError(w, http.StatusBadRequest, extractor.ErrEmpty)
		return
	}

	if _, err := extractor.DetectImageType(*file); err != nil {
		writeError(w, http.StatusUnsupportedMediaType, err)
		return
	}

	options := &extractor.ExtractOptions{
		Prompt: valuePrompt(r),
	}

	result, err := e.Extract(r.Context(), *file, options)

	if err != nil {
		slog.ErrorContext(r.Context(), "error processing image", "file", file.Name, "error", err)

		writeError(w, http.StatusBadGateway, err)
		return
	}

	s.Set(result.Text)

	writeMarkdown(w, r, result.Text)
}
