package web

import (
	"embed"
	"html/template"

	"github.com/adrianliechti/lens/config"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templates embed.FS

const idleMessage = "Upload an image to start the extraction process."

type Handler struct {
	*config.Config

	page *template.Template
	logo template.URL
}

func New(cfg *config.Config) (*Handler, error) {
	page, err := template.ParseFS(templates, "templates/index.html")

	if err != nil {
		return nil, err
	}

	h := &Handler{
		Config: cfg,

		page: page,
		logo: loadImage(cfg.Logo),
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/", h.handleIndex)

	r.Post("/extract", h.handleExtract)
	r.Post("/clear", h.handleClear)
}
