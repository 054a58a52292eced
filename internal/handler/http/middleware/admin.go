package middleware

import (
	"net/http"

	"github.com/pontoeletronico/ponto-reports/internal/handler/http/response"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Session is required")
			return
		}

		if !s.IsAdmin() {
			response.Forbidden(w, "Super admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
