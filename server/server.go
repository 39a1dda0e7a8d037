package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/lens/config"
	"github.com/adrianliechti/lens/server/api"
	"github.com/adrianliechti/lens/server/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	webHandler, err := web.New(cfg)

	if err != nil {
		return nil, err
	}

	apiHandler, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	mux := chi.NewRouter()

	s := &Server{
		Config:  cfg,
		Handler: otelhttp.NewHandler(mux, "lens"),
	}

	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(logRequests)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Group(func(r chi.Router) {
		r.Use(cfg.Sessions.Middleware)

		webHandler.Attach(r)
	})

	mux.Route("/api", func(r chi.Router) {
		if len(cfg.Origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: cfg.Origins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type", "Content-Disposition"},

				AllowCredentials: true,
				MaxAge:           300,
			}))
		}

		r.Use(cfg.Sessions.Middleware)

		apiHandler.Attach(r)
	})

	return s, nil
}

// ListenAndServe serves until ctx is done, then drains open requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s,

		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		slog.Info("server listening", "address", s.Address)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
