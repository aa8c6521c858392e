package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/waypartner/adminpanel/internal/model"
)

const SessionCookieName = "admin_session"

type contextKey string

const contextKeySession contextKey = "session"

// Authenticator resolves a client token to the live admin session.
type Authenticator interface {
	Authenticated(token string) (model.Session, bool)
}

// Session middleware validates the session cookie against the auth gate and
// populates the request context with the session. Unauthenticated requests
// get a JSON 401.
func Session(gate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			sess, ok := gate.Authenticated(cookie.Value)
			if !ok {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), contextKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated session from the context.
func SessionFromContext(ctx context.Context) model.Session {
	v, _ := ctx.Value(contextKeySession).(model.Session)
	return v
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
}
