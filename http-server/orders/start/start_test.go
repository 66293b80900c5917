package start

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"embotelladora-backend/internal/storage"
)

type mockIniciador struct {
	mock.Mock
}

func (m *mockIniciador) IniciarSesion(ctx context.Context, ordenID int) (int, error) {
	args := m.Called(ctx, ordenID)
	return args.Int(0), args.Error(1)
}

func nuevaPeticion(t *testing.T, id string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/production-orders/"+id+"/start", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestStartOrder_Success(t *testing.T) {
	mockService := new(mockIniciador)
	mockService.On("IniciarSesion", mock.Anything, 42).Return(15, nil)

	handler := StartOrder(slog.Default(), mockService)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, nuevaPeticion(t, "42"))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)
	assert.Equal(t, "Sesión de producción iniciada", resp.Message)
	assert.Equal(t, 15, resp.HistorialID)

	mockService.AssertExpectations(t)
}

func TestStartOrder_IDInvalido(t *testing.T) {
	mockService := new(mockIniciador)
	handler := StartOrder(slog.Default(), mockService)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, nuevaPeticion(t, "abc"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "IniciarSesion")
}

func TestStartOrder_OrdenNoEncontrada(t *testing.T) {
	mockService := new(mockIniciador)
	mockService.On("IniciarSesion", mock.Anything, 99).Return(0, storage.ErrOrdenNoEncontrada)

	handler := StartOrder(slog.Default(), mockService)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, nuevaPeticion(t, "99"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Orden de producción no encontrada")
	mockService.AssertExpectations(t)
}

func TestStartOrder_ErrorDelServicio(t *testing.T) {
	mockService := new(mockIniciador)
	mockService.On("IniciarSesion", mock.Anything, 42).Return(0, errors.New("db caída"))

	handler := StartOrder(slog.Default(), mockService)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, nuevaPeticion(t, "42"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockService.AssertExpectations(t)
}
