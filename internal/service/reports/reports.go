package reports

import (
	"context"
	"errors"
	"math"
	"time"

	"embotelladora-backend/internal/storage"
)

// ErrEntidadNoSoportada la entidad principal pedida no tiene generador.
var ErrEntidadNoSoportada = errors.New("entidad principal no soportada")

// Storage son las consultas de agregación que consumen los generadores.
type Storage interface {
	TotalesProduccion(ctx context.Context, f storage.ReportFiltros) (*storage.TotalesProduccion, error)
	GruposProduccion(ctx context.Context, f storage.ReportFiltros, agrupacion string) ([]storage.GrupoProduccion, error)
	TotalesParos(ctx context.Context, f storage.ReportFiltros) (*storage.TotalesParos, error)
	GruposParos(ctx context.Context, f storage.ReportFiltros, agrupacion string) ([]storage.GrupoParos, error)
}

// Filtros de un reporte: rango, filtros opcionales y dimensión de
// agrupación.
type Filtros struct {
	storage.ReportFiltros
	Agrupacion string
}

// Generador es el contrato común de los seis reportes. Cada entidad
// principal registra el suyo en la tabla del servicio; no hay switch sobre
// el nombre de la entidad.
type Generador interface {
	Generar(ctx context.Context, f Filtros) (*storage.ReportResult, error)
}

type Service struct {
	generadores map[string]Generador
}

func NewService(st Storage) *Service {
	return &Service{
		generadores: map[string]Generador{
			storage.EntidadProduccion: &generadorProduccion{
				st:                st,
				agrupacionDefecto: storage.AgrupacionDia,
			},
			storage.EntidadLinea: &generadorProduccion{
				st:                st,
				agrupacionDefecto: storage.AgrupacionLinea,
				tituloConteo:      "Líneas con producción",
			},
			storage.EntidadProducto: &generadorProduccion{
				st:                st,
				agrupacionDefecto: storage.AgrupacionProducto,
				tituloConteo:      "Productos con producción",
			},
			storage.EntidadParos: &generadorParos{
				st:                st,
				agrupacionDefecto: "tipo_paro",
			},
			storage.EntidadMateriaPrima: &generadorParos{
				st:                st,
				agrupacionDefecto: "materia_prima",
				tituloConteo:      "Materias primas implicadas",
				conMateriaPrima:   true,
			},
			storage.EntidadDesviacionCalidad: &generadorParos{
				st:                   st,
				agrupacionDefecto:    "desviacion_calidad",
				tituloConteo:         "Desviaciones implicadas",
				conDesviacionCalidad: true,
			},
		},
	}
}

func (s *Service) Generar(ctx context.Context, entidad string, f Filtros) (*storage.ReportResult, error) {
	generador, ok := s.generadores[entidad]
	if !ok {
		return nil, ErrEntidadNoSoportada
	}

	return generador.Generar(ctx, f)
}

// rangoAnterior es la ventana de igual duración inmediatamente anterior al
// rango del reporte; alimenta los deltas de comparación de los KPI.
func rangoAnterior(f storage.ReportFiltros) storage.ReportFiltros {
	duracion := f.Hasta.Sub(f.Desde)
	anterior := f
	anterior.Hasta = f.Desde
	anterior.Desde = f.Desde.Add(-duracion)
	return anterior
}

// variacion es el delta porcentual contra el período anterior. Sin
// denominador en el período anterior no hay comparación y se devuelve nil.
func variacion(actual, anterior float64) *float64 {
	if anterior <= 0 {
		return nil
	}
	v := redondear((actual - anterior) / anterior * 100)
	return &v
}

func redondear(v float64) float64 {
	return math.Round(v*100) / 100
}

func porcentaje(parte, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return redondear(parte / total * 100)
}

var etiquetasAgrupacion = map[string]string{
	storage.AgrupacionDia:      "Día",
	storage.AgrupacionSemana:   "Semana",
	storage.AgrupacionMes:      "Mes",
	storage.AgrupacionLinea:    "Línea",
	storage.AgrupacionProducto: "Producto",
	storage.AgrupacionTurno:    "Turno",
	"tipo_paro":                "Tipo de paro",
	"categoria":                "Categoría",
	"materia_prima":            "Materia prima",
	"desviacion_calidad":       "Desviación de calidad",
}

func etiquetaAgrupacion(agrupacion string) string {
	if etiqueta, ok := etiquetasAgrupacion[agrupacion]; ok {
		return etiqueta
	}
	return "Grupo"
}

// RangoPorDefecto devuelve los últimos n días terminando mañana a
// medianoche, para reportes pedidos sin from/to.
func RangoPorDefecto(n int, ahora time.Time) (time.Time, time.Time) {
	hasta := ahora.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	return hasta.AddDate(0, 0, -n), hasta
}
