package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const CookieName = "lens_session"

type contextKey struct{}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Middleware resolves the session from the request cookie, issuing a new
// session ID when the cookie is missing or malformed.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""

		if c, err := r.Cookie(CookieName); err == nil {
			if val, err := uuid.Parse(c.Value); err == nil {
				id = val.String()
			}
		}

		if id == "" {
			id = uuid.NewString()

			cookie := &http.Cookie{
				Name:  CookieName,
				Value: id,

				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			}

			if s.crossSite {
				cookie.Secure = true
				cookie.SameSite = http.SameSiteNoneMode
			}

			http.SetCookie(w, cookie)
		}

		ctx := WithSession(r.Context(), s.Session(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
