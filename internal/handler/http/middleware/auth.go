package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/pontoeletronico/ponto-reports/internal/handler/http/response"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

// BearerVerifier verifies tokens from the Authorization header only, so the
// verified token is always the raw token the session is keyed on.
func BearerVerifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader)
}

// SessionRequired turns the token verified by BearerVerifier into a
// session.Session on the request context. Tokens torn down after an upstream
// 401 are rejected.
func SessionRequired(sessions *session.Manager) func(http.Handler) http.Handler {
	return sessionMiddleware(sessions, sessions.Init)
}

// AdminSessionRequired is SessionRequired for super-admin tokens.
func AdminSessionRequired(sessions *session.Manager) func(http.Handler) http.Handler {
	return sessionMiddleware(sessions, sessions.InitAdmin)
}

func sessionMiddleware(sessions *session.Manager, initFn func(string, map[string]interface{}) (*session.Session, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing bearer token")
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				response.Unauthorized(w, "Missing bearer token")
				return
			}
			if sessions.IsRevoked(raw) {
				response.SessionExpired(w, "Session expired, please log in again")
				return
			}

			s, err := initFn(raw, claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), s)))
		}
		return http.HandlerFunc(hfn)
	}
}
