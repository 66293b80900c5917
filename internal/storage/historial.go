package storage

import "time"

// ProduccionHistorial representa una sesión de trabajo abierta-cerrada
// contra una orden. A lo sumo una sesión activa por orden; los acumulados
// por categoría sólo se incrementan al cierre, nunca se reemplazan, porque
// un cliente puede reintentar el cierre.
type ProduccionHistorial struct {
	ID                int        `gorm:"primaryKey" json:"id"`
	OrdenProduccionID int        `gorm:"index;not null" json:"ordenProduccionId"`
	LineaProduccionID int        `gorm:"index;not null" json:"lineaProduccionId"`
	ProductoID        int        `gorm:"index;not null" json:"productoId"`
	FechaInicio       time.Time  `gorm:"not null" json:"fechaInicio"`
	FechaFin          *time.Time `json:"fechaFin,omitempty"`
	Activo            bool       `gorm:"index;not null;default:false" json:"activo"`
	CajasProducidas   int        `gorm:"not null;default:0" json:"cajasProducidas"`

	CantidadParosMantenimiento int `gorm:"not null;default:0" json:"cantidadParosMantenimiento"`
	CantidadParosCalidad       int `gorm:"not null;default:0" json:"cantidadParosCalidad"`
	CantidadParosOperacion     int `gorm:"not null;default:0" json:"cantidadParosOperacion"`
	TiempoParosMantenimiento   int `gorm:"not null;default:0" json:"tiempoParosMantenimiento"`
	TiempoParosCalidad         int `gorm:"not null;default:0" json:"tiempoParosCalidad"`
	TiempoParosOperacion       int `gorm:"not null;default:0" json:"tiempoParosOperacion"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ProduccionHistorial) TableName() string {
	return "produccion_historial"
}

// CierreHistorial lleva los valores con los que se cierra una sesión.
// CajasProducidas se fija al total derivado de los registros por hora;
// Resumen se suma a los acumulados existentes.
type CierreHistorial struct {
	FechaFin        time.Time
	CajasProducidas int
	Resumen         ResumenParos
}
