package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"embotelladora-backend/internal/service/reports"
	"embotelladora-backend/internal/storage"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generar(ctx context.Context, entidad string, f reports.Filtros) (*storage.ReportResult, error) {
	args := m.Called(ctx, entidad, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ReportResult), args.Error(1)
}

type mockOpciones struct {
	mock.Mock
}

func (m *mockOpciones) Opciones(ctx context.Context, tipo string, dependeDe *int, categoria string) ([]storage.Opcion, error) {
	args := m.Called(ctx, tipo, dependeDe, categoria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Opcion), args.Error(1)
}

func TestGetDynamicReport_Success(t *testing.T) {
	mockGen := new(mockGenerator)

	result := &storage.ReportResult{
		KPIs: []storage.KPI{{Titulo: "Cajas producidas", Valor: 1200, Unidad: "cajas"}},
		ChartData: []storage.PuntoGrafica{
			{Label: "2026-03-01", Value: 700},
		},
		TableData: []storage.Fila{{"grupo": "2026-03-01", "producidas": 700}},
		Columns:   []storage.Columna{{Key: "grupo", Label: "Día"}},
	}

	mockGen.On("Generar", mock.Anything, "produccion", mock.MatchedBy(func(f reports.Filtros) bool {
		return f.Agrupacion == "dia" &&
			f.Desde.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Hasta.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	})).Return(result, nil)

	handler := GetDynamicReport(slog.Default(), mockGen)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/dynamic-report?entidad_principal=produccion&from=2026-03-01&to=2026-03-08&agrupacion=dia", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp storage.ReportResult
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)
	require.Len(t, resp.KPIs, 1)
	assert.Equal(t, "Cajas producidas", resp.KPIs[0].Titulo)

	mockGen.AssertExpectations(t)
}

func TestGetDynamicReport_FaltaEntidad(t *testing.T) {
	mockGen := new(mockGenerator)
	handler := GetDynamicReport(slog.Default(), mockGen)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/dynamic-report", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Falta la entidad principal")
	mockGen.AssertNotCalled(t, "Generar")
}

func TestGetDynamicReport_EntidadNoSoportada(t *testing.T) {
	mockGen := new(mockGenerator)
	mockGen.On("Generar", mock.Anything, "inventario", mock.Anything).
		Return(nil, reports.ErrEntidadNoSoportada)

	handler := GetDynamicReport(slog.Default(), mockGen)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/dynamic-report?entidad_principal=inventario", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Entidad principal no soportada")
	mockGen.AssertExpectations(t)
}

func TestGetDynamicReport_FiltrosOpcionales(t *testing.T) {
	mockGen := new(mockGenerator)

	mockGen.On("Generar", mock.Anything, "paros", mock.MatchedBy(func(f reports.Filtros) bool {
		return f.LineaProduccionID != nil && *f.LineaProduccionID == 3 &&
			f.Turno != nil && *f.Turno == "matutino" &&
			f.TipoParoID != nil && *f.TipoParoID == 5
	})).Return(&storage.ReportResult{}, nil)

	handler := GetDynamicReport(slog.Default(), mockGen)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/dynamic-report?entidad_principal=paros&linea_produccion=3&turno=matutino&tipo_paro=5", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockGen.AssertExpectations(t)
}

func TestGetDynamicReport_FechaInvalida(t *testing.T) {
	mockGen := new(mockGenerator)
	handler := GetDynamicReport(slog.Default(), mockGen)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/dynamic-report?entidad_principal=produccion&from=hace-un-mes", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Fecha 'from' inválida")
	mockGen.AssertNotCalled(t, "Generar")
}

func TestGetFilterOptions_Success(t *testing.T) {
	mockLector := new(mockOpciones)

	opciones := []storage.Opcion{
		{ID: 1, Nombre: "Línea 1"},
		{ID: 2, Nombre: "Línea 2"},
	}
	mockLector.On("Opciones", mock.Anything, "linea_produccion", (*int)(nil), "").
		Return(opciones, nil)

	handler := GetFilterOptions(slog.Default(), mockLector)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/filter-options?type=linea_produccion", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Options []storage.Opcion `json:"options"`
	}
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)
	require.Len(t, resp.Options, 2)
	assert.Equal(t, "Línea 1", resp.Options[0].Nombre)

	mockLector.AssertExpectations(t)
}

func TestGetFilterOptions_FaltaElTipo(t *testing.T) {
	mockLector := new(mockOpciones)
	handler := GetFilterOptions(slog.Default(), mockLector)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/filter-options", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Falta el tipo de filtro")
	mockLector.AssertNotCalled(t, "Opciones")
}

func TestGetFilterOptions_EnCascada(t *testing.T) {
	mockLector := new(mockOpciones)

	mockLector.On("Opciones", mock.Anything, "sistema", mock.MatchedBy(func(id *int) bool {
		return id != nil && *id == 3
	}), "").Return([]storage.Opcion{{ID: 9, Nombre: "Llenadora"}}, nil)

	handler := GetFilterOptions(slog.Default(), mockLector)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/filter-options?type=sistema&dependsOn=3", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockLector.AssertExpectations(t)
}

func TestGetFilterOptions_TiposParoAcotadosPorCalidad(t *testing.T) {
	mockLector := new(mockOpciones)

	// con entidad desviacion_calidad sólo se ofrecen paros de calidad
	mockLector.On("Opciones", mock.Anything, "tipo_paro", (*int)(nil), storage.CategoriaCalidad).
		Return([]storage.Opcion{{ID: 4, Nombre: "Rechazo de calidad"}}, nil)

	handler := GetFilterOptions(slog.Default(), mockLector)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/filter-options?type=tipo_paro&entidad_principal=desviacion_calidad", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockLector.AssertExpectations(t)
}

func TestGetFilterOptions_DependsOnInvalido(t *testing.T) {
	mockLector := new(mockOpciones)
	handler := GetFilterOptions(slog.Default(), mockLector)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/filter-options?type=sistema&dependsOn=abc", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Parámetro dependsOn inválido")
	mockLector.AssertNotCalled(t, "Opciones")
}
