package storage

import "time"

// Estados de una orden de producción.
const (
	EstadoPendiente  = "pendiente"
	EstadoEnProgreso = "en_progreso"
	EstadoCompletada = "completada"
)

// Turnos válidos.
const (
	TurnoMatutino   = "matutino"
	TurnoVespertino = "vespertino"
	TurnoNocturno   = "nocturno"
)

// OrdenProduccion es una corrida de producción planificada sobre una línea.
// CajasProducidas sólo crece y sólo mediante incrementos en base
// (cajas_producidas + ?), nunca por asignación absoluta.
type OrdenProduccion struct {
	ID                      int        `gorm:"primaryKey" json:"id"`
	NumeroOrden             string     `gorm:"size:50;not null;uniqueIndex" json:"numeroOrden"`
	LineaProduccionID       int        `gorm:"index;not null" json:"lineaProduccionId"`
	ProductoID              int        `gorm:"index;not null" json:"productoId"`
	Turno                   string     `gorm:"size:20;not null" json:"turno"`
	FechaProgramada         time.Time  `gorm:"index;not null" json:"fechaProgramada"`
	CajasPlanificadas       int        `gorm:"not null;default:0" json:"cajasPlanificadas"`
	CajasProducidas         int        `gorm:"not null;default:0" json:"cajasProducidas"`
	Estado                  string     `gorm:"size:20;not null;default:pendiente" json:"estado"`
	TiempoTranscurridoHoras *float64   `json:"tiempoTranscurridoHoras,omitempty"`
	UltimaActualizacion     *time.Time `json:"ultimaActualizacion,omitempty"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	LineaProduccion *LineaProduccion `gorm:"foreignKey:LineaProduccionID" json:"lineaProduccion,omitempty"`
	Producto        *Producto        `gorm:"foreignKey:ProductoID" json:"producto,omitempty"`
}

func (OrdenProduccion) TableName() string {
	return "ordenes_produccion"
}

// ProduccionPorHora es el registro inmutable de un incremento de cajas.
// Se inserta, nunca se actualiza; la serie reconstruye el ritmo de
// producción de una sesión.
type ProduccionPorHora struct {
	ID                int       `gorm:"primaryKey" json:"id"`
	OrdenProduccionID int       `gorm:"index;not null" json:"ordenProduccionId"`
	CajasProducidas   int       `gorm:"not null" json:"cajasProducidas"`
	HoraRegistro      time.Time `gorm:"index;not null" json:"horaRegistro"`
}

func (ProduccionPorHora) TableName() string {
	return "produccion_por_hora"
}
