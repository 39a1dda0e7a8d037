package api

import (
	"errors"
	"net/http"

	"github.com/adrianliechti/lens/pkg/session"
)

var errNoResult = errors.New("no result")

func (h *Handler) handleResult(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())

	if !ok {
		writeError(w, http.StatusNotFound, errNoResult)
		return
	}

	result, ok := s.Get()

	if !ok {
		writeError(w, http.StatusNotFound, errNoResult)
		return
	}

	writeMarkdown(w, r, result)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		s.Clear()
	}

	w.WriteHeader(http.StatusNoContent)
}
