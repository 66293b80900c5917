package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := SessionToken("secreto-123")(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "sin encabezado", header: "", want: http.StatusUnauthorized},
		{name: "sin esquema Bearer", header: "secreto-123", want: http.StatusUnauthorized},
		{name: "esquema Basic", header: "Basic secreto-123", want: http.StatusUnauthorized},
		{name: "token equivocado", header: "Bearer otro-token", want: http.StatusUnauthorized},
		{name: "token válido", header: "Bearer secreto-123", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/production-orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"No autorizado"}`, rr.Body.String())
			}
		})
	}
}
