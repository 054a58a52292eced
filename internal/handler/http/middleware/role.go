package middleware

import (
	"net/http"

	"github.com/pontoeletronico/ponto-reports/internal/handler/http/response"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

// RequireKind lets through sessions of the given kinds only.
func RequireKind(kinds ...session.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Session is required")
				return
			}

			for _, k := range kinds {
				if s.Kind == k {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "This action is not available for "+string(s.Kind)+" accounts")
		})
	}
}

// RequireCompany requires a company (empresa) session
func RequireCompany(next http.Handler) http.Handler {
	return RequireKind(session.KindCompany)(next)
}
