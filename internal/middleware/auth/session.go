package auth

import (
	"net/http"
	"strings"
)

// SessionToken protege las rutas del API: exige Authorization: Bearer con
// el token de sesión configurado. Sin sesión válida responde 401 con el
// cuerpo {message} que espera el dashboard.
func SessionToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				deny(w)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				deny(w)
				return
			}

			if strings.TrimPrefix(authHeader, "Bearer ") != token {
				deny(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"No autorizado"}`))
}
