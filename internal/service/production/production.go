package production

import (
	"context"
	"log/slog"
	"time"

	"embotelladora-backend/internal/storage"
)

// Storage son los accesos a base que necesita el flujo de producción.
type Storage interface {
	GetOrden(ctx context.Context, id int) (*storage.OrdenProduccion, error)
	IncrementarCajas(ctx context.Context, id int, incremento int, estado string, ahora time.Time) (*storage.OrdenProduccion, error)
	GuardarTiempoTranscurrido(ctx context.Context, id int, horas float64) error
	CrearRegistroHora(ctx context.Context, registro *storage.ProduccionPorHora) error
	CrearParo(ctx context.Context, paro *storage.Paro) error
	GetTipoParo(ctx context.Context, id int) (*storage.TipoParo, error)
	GetHistorial(ctx context.Context, id int) (*storage.ProduccionHistorial, error)
	HistorialActivo(ctx context.Context, ordenID int) (*storage.ProduccionHistorial, error)
	CrearHistorial(ctx context.Context, historial *storage.ProduccionHistorial) error
	CerrarHistorial(ctx context.Context, id int, cierre storage.CierreHistorial) error
	CerrarHistorialesActivos(ctx context.Context, ordenID int, fin time.Time) error
	SumarCajasDesde(ctx context.Context, ordenID int, desde time.Time) (int, error)
	ParosPorCategoriaDesde(ctx context.Context, ordenID int, desde time.Time) ([]storage.CategoriaParos, error)
	EnTransaccion(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

func NewService(log *slog.Logger, storage Storage) *Service {
	return &Service{
		storage: storage,
		log:     log,
		now:     time.Now,
	}
}

// ParoEntrada es un paro reportado dentro de una actualización. Las
// entradas sin tipo o sin minutos positivos se descartan sin rechazar el
// lote.
type ParoEntrada struct {
	TipoParoID          *int       `json:"tipoParoId"`
	TiempoMinutos       *int       `json:"tiempoMinutos"`
	Descripcion         string     `json:"descripcion"`
	SistemaID           *int       `json:"sistemaId"`
	SubsistemaID        *int       `json:"subsistemaId"`
	SubsubsistemaID     *int       `json:"subsubsistemaId"`
	DesviacionCalidadID *int       `json:"desviacionCalidadId"`
	MateriaPrimaID      *int       `json:"materiaPrimaId"`
	FechaInicio         *time.Time `json:"fechaInicio"`
	FechaFin            *time.Time `json:"fechaFin"`
}

// Valida indica si el paro trae lo mínimo para persistirse.
func (p ParoEntrada) Valida() bool {
	return p.TipoParoID != nil && p.TiempoMinutos != nil && *p.TiempoMinutos > 0
}

// ActualizacionOrden es el cuerpo del endpoint de avance/cierre de una
// orden. CajasProducidas es el total acumulado que reporta el cliente;
// HourlyProduction es un delta explícito y tiene prioridad.
type ActualizacionOrden struct {
	CajasProducidas         *int                  `json:"cajasProducidas" validate:"omitempty,gte=0"`
	HourlyProduction        *int                  `json:"hourlyProduction" validate:"omitempty,gte=0"`
	Paros                   []ParoEntrada         `json:"paros" validate:"omitempty,dive"`
	IsFinalizingProduction  bool                  `json:"isFinalizingProduction"`
	TiempoTranscurridoHoras *float64              `json:"tiempoTranscurridoHoras" validate:"omitempty,gte=0"`
	ActiveHistorialID       *int                  `json:"activeHistorialId" validate:"omitempty,gt=0"`
	ResumenParos            *storage.ResumenParos `json:"resumenParos"`
}
