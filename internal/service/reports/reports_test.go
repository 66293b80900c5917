package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"embotelladora-backend/internal/storage"
)

type mockReportStorage struct {
	mock.Mock
}

func (m *mockReportStorage) TotalesProduccion(ctx context.Context, f storage.ReportFiltros) (*storage.TotalesProduccion, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.TotalesProduccion), args.Error(1)
}

func (m *mockReportStorage) GruposProduccion(ctx context.Context, f storage.ReportFiltros, agrupacion string) ([]storage.GrupoProduccion, error) {
	args := m.Called(ctx, f, agrupacion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.GrupoProduccion), args.Error(1)
}

func (m *mockReportStorage) TotalesParos(ctx context.Context, f storage.ReportFiltros) (*storage.TotalesParos, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.TotalesParos), args.Error(1)
}

func (m *mockReportStorage) GruposParos(ctx context.Context, f storage.ReportFiltros, agrupacion string) ([]storage.GrupoParos, error) {
	args := m.Called(ctx, f, agrupacion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.GrupoParos), args.Error(1)
}

func filtrosDePrueba() Filtros {
	return Filtros{
		ReportFiltros: storage.ReportFiltros{
			Desde: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Hasta: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		},
	}
}

func buscarKPI(t *testing.T, kpis []storage.KPI, titulo string) storage.KPI {
	t.Helper()
	for _, kpi := range kpis {
		if kpi.Titulo == titulo {
			return kpi
		}
	}
	t.Fatalf("no se encontró el KPI %q", titulo)
	return storage.KPI{}
}

func TestGenerar_EntidadDesconocida(t *testing.T) {
	s := NewService(new(mockReportStorage))

	_, err := s.Generar(context.Background(), "inventario", filtrosDePrueba())

	assert.ErrorIs(t, err, ErrEntidadNoSoportada)
}

func TestGenerar_Produccion(t *testing.T) {
	st := new(mockReportStorage)
	f := filtrosDePrueba()

	st.On("TotalesProduccion", mock.Anything, f.ReportFiltros).
		Return(&storage.TotalesProduccion{Producidas: 1200, Planificadas: 1500, Ordenes: 4}, nil)
	st.On("TotalesProduccion", mock.Anything, rangoAnterior(f.ReportFiltros)).
		Return(&storage.TotalesProduccion{Producidas: 1000, Planificadas: 1400, Ordenes: 5}, nil)
	// sin agrupación explícita, producción agrupa por día
	st.On("GruposProduccion", mock.Anything, f.ReportFiltros, storage.AgrupacionDia).
		Return([]storage.GrupoProduccion{
			{Clave: "2026-03-01", Producidas: 700, Planificadas: 800},
			{Clave: "2026-03-02", Producidas: 500, Planificadas: 700},
		}, nil)

	s := NewService(st)
	result, err := s.Generar(context.Background(), storage.EntidadProduccion, f)

	require.NoError(t, err)

	producidas := buscarKPI(t, result.KPIs, "Cajas producidas")
	assert.Equal(t, 1200.0, producidas.Valor)
	require.NotNil(t, producidas.Variacion)
	assert.Equal(t, 20.0, *producidas.Variacion)

	cumplimiento := buscarKPI(t, result.KPIs, "Cumplimiento")
	assert.Equal(t, 80.0, cumplimiento.Valor)

	ordenes := buscarKPI(t, result.KPIs, "Órdenes")
	assert.Equal(t, 4.0, ordenes.Valor)
	require.NotNil(t, ordenes.Variacion)
	assert.Equal(t, -20.0, *ordenes.Variacion)

	require.Len(t, result.ChartData, 2)
	assert.Equal(t, "2026-03-01", result.ChartData[0].Label)
	assert.Equal(t, 700.0, result.ChartData[0].Value)

	require.Len(t, result.TableData, 2)
	assert.Equal(t, 87.5, result.TableData[0]["cumplimiento"])

	assert.Equal(t, "Día", result.Columns[0].Label)
	st.AssertExpectations(t)
}

func TestGenerar_ProduccionSinDatos(t *testing.T) {
	st := new(mockReportStorage)
	f := filtrosDePrueba()

	st.On("TotalesProduccion", mock.Anything, mock.Anything).
		Return(&storage.TotalesProduccion{}, nil)
	st.On("GruposProduccion", mock.Anything, mock.Anything, storage.AgrupacionDia).
		Return([]storage.GrupoProduccion{}, nil)

	s := NewService(st)
	result, err := s.Generar(context.Background(), storage.EntidadProduccion, f)

	require.NoError(t, err)

	producidas := buscarKPI(t, result.KPIs, "Cajas producidas")
	assert.Equal(t, 0.0, producidas.Valor)
	// sin período anterior no hay delta de comparación
	assert.Nil(t, producidas.Variacion)

	cumplimiento := buscarKPI(t, result.KPIs, "Cumplimiento")
	assert.Equal(t, 0.0, cumplimiento.Valor)

	// las series vacías serializan como [] y no como null
	assert.NotNil(t, result.ChartData)
	assert.NotNil(t, result.TableData)
	assert.Empty(t, result.ChartData)
	assert.Empty(t, result.TableData)
}

func TestGenerar_ProduccionAgrupacionExplicita(t *testing.T) {
	st := new(mockReportStorage)
	f := filtrosDePrueba()
	f.Agrupacion = storage.AgrupacionTurno

	st.On("TotalesProduccion", mock.Anything, mock.Anything).
		Return(&storage.TotalesProduccion{Producidas: 100, Planificadas: 100, Ordenes: 1}, nil)
	st.On("GruposProduccion", mock.Anything, f.ReportFiltros, storage.AgrupacionTurno).
		Return([]storage.GrupoProduccion{{Clave: "matutino", Producidas: 100, Planificadas: 100}}, nil)

	s := NewService(st)
	result, err := s.Generar(context.Background(), storage.EntidadProduccion, f)

	require.NoError(t, err)
	assert.Equal(t, "Turno", result.Columns[0].Label)
	st.AssertExpectations(t)
}

func TestGenerar_PorLineaCuentaDimensiones(t *testing.T) {
	st := new(mockReportStorage)
	f := filtrosDePrueba()

	st.On("TotalesProduccion", mock.Anything, mock.Anything).
		Return(&storage.TotalesProduccion{Producidas: 900, Planificadas: 1000, Ordenes: 3}, nil)
	st.On("GruposProduccion", mock.Anything, f.ReportFiltros, storage.AgrupacionLinea).
		Return([]storage.GrupoProduccion{
			{Clave: "Línea 1", Producidas: 600, Planificadas: 600},
			{Clave: "Línea 2", Producidas: 300, Planificadas: 400},
		}, nil)

	s := NewService(st)
	result, err := s.Generar(context.Background(), storage.EntidadLinea, f)

	require.NoError(t, err)
	conteo := buscarKPI(t, result.KPIs, "Líneas con producción")
	assert.Equal(t, 2.0, conteo.Valor)
	st.AssertExpectations(t)
}

func TestGenerar_Paros(t *testing.T) {
	st := new(mockReportStorage)
	f := filtrosDePrueba()

	st.On("TotalesParos", mock.Anything, f.ReportFiltros).
		Return(&storage.TotalesParos{Cantidad: 8, Minutos: 240}, nil)
	st.On("TotalesParos", mock.Anything, rangoAnterior(f.ReportFiltros)).
		Return(&storage.TotalesParos{Cantidad: 10, Minutos: 200}, nil)
	st.On("GruposParos", mock.Anything, f.ReportFiltros, "tipo_paro").
		Return([]storage.GrupoParos{
			{Clave: "Falla mecánica", Cantidad: 5, Minutos: 180},
			{Clave: "Cambio de formato", Cantidad: 3, Minutos: 60},
		}, nil)

	s := NewService(st)
	result, err := s.Generar(context.Background(), storage.EntidadParos, f)

	require.NoError(t, err)

	paros := buscarKPI(t, result.KPIs, "Paros")
	assert.Equal(t, 8.0, paros.Valor)
	require.NotNil(t, paros.Variacion)
	assert.Equal(t, -20.0, *paros.Variacion)

	minutos := buscarKPI(t, result.KPIs, "Minutos de paro")
	require.NotNil(t, minutos.Variacion)
	assert.Equal(t, 20.0, *minutos.Variacion)

	promedio := buscarKPI(t, result.KPIs, "Duración promedio")
	assert.Equal(t, 30.0, promedio.Valor)

	require.Len(t, result.TableData, 2)
	assert.Equal(t, 36.0, result.TableData[0]["promedio"])
	st.AssertExpectations(t)
}

func TestGenerar_MateriaPrimaAcotaLosFiltros(t *testing.T) {
	st := new(mockReportStorage)
	f := filtrosDePrueba()

	esperados := f.ReportFiltros
	esperados.ConMateriaPrima = true

	st.On("TotalesParos", mock.Anything, esperados).
		Return(&storage.TotalesParos{Cantidad: 2, Minutos: 50}, nil)
	st.On("TotalesParos", mock.Anything, rangoAnterior(esperados)).
		Return(&storage.TotalesParos{}, nil)
	st.On("GruposParos", mock.Anything, esperados, "materia_prima").
		Return([]storage.GrupoParos{{Clave: "Tapas", Cantidad: 2, Minutos: 50}}, nil)

	s := NewService(st)
	result, err := s.Generar(context.Background(), storage.EntidadMateriaPrima, f)

	require.NoError(t, err)
	conteo := buscarKPI(t, result.KPIs, "Materias primas implicadas")
	assert.Equal(t, 1.0, conteo.Valor)
	st.AssertExpectations(t)
}

func TestRangoAnterior(t *testing.T) {
	f := storage.ReportFiltros{
		Desde: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		Hasta: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	anterior := rangoAnterior(f)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), anterior.Desde)
	assert.Equal(t, f.Desde, anterior.Hasta)
}

func TestVariacion(t *testing.T) {
	v := variacion(120, 100)
	require.NotNil(t, v)
	assert.Equal(t, 20.0, *v)

	v = variacion(80, 100)
	require.NotNil(t, v)
	assert.Equal(t, -20.0, *v)

	assert.Nil(t, variacion(50, 0))
}

func TestRangoPorDefecto(t *testing.T) {
	ahora := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	desde, hasta := RangoPorDefecto(30, ahora)

	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), hasta)
	assert.Equal(t, hasta.AddDate(0, 0, -30), desde)
}
