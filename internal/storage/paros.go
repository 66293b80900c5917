package storage

import "time"

// Categorías de paro. La categoría vive en el catálogo de tipos de paro y
// se valida al dar de alta el tipo, no se infiere en tiempo de consulta.
const (
	CategoriaMantenimiento = "mantenimiento"
	CategoriaCalidad       = "calidad"
	CategoriaOperacion     = "operacion"
)

// TipoParo es el catálogo de tipos de paro.
type TipoParo struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:120;not null;uniqueIndex" json:"nombre"`
	Categoria string    `gorm:"size:20;not null" json:"categoria"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (TipoParo) TableName() string {
	return "tipos_paro"
}

// Paro es un evento de tiempo muerto contra una orden. Los vínculos al
// árbol de equipos (sistema → subsistema → subsubsistema) y a la causa
// (desviación de calidad o materia prima) son opcionales.
type Paro struct {
	ID                  int        `gorm:"primaryKey" json:"id"`
	OrdenProduccionID   int        `gorm:"index;not null" json:"ordenProduccionId"`
	LineaProduccionID   int        `gorm:"index;not null" json:"lineaProduccionId"`
	TipoParoID          int        `gorm:"index;not null" json:"tipoParoId"`
	TiempoMinutos       int        `gorm:"not null" json:"tiempoMinutos"`
	Descripcion         string     `gorm:"type:text" json:"descripcion"`
	SistemaID           *int       `gorm:"index" json:"sistemaId,omitempty"`
	SubsistemaID        *int       `gorm:"index" json:"subsistemaId,omitempty"`
	SubsubsistemaID     *int       `gorm:"index" json:"subsubsistemaId,omitempty"`
	DesviacionCalidadID *int       `gorm:"index" json:"desviacionCalidadId,omitempty"`
	MateriaPrimaID      *int       `gorm:"index" json:"materiaPrimaId,omitempty"`
	FechaInicio         time.Time  `gorm:"index;not null" json:"fechaInicio"`
	FechaFin            *time.Time `json:"fechaFin,omitempty"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"createdAt"`

	TipoParo *TipoParo `gorm:"foreignKey:TipoParoID" json:"tipoParo,omitempty"`
}

func (Paro) TableName() string {
	return "paros"
}

// ResumenParos acumula cantidad y minutos de paro por categoría. Es el
// delta que se suma al historial al cerrar una sesión.
type ResumenParos struct {
	CantidadMantenimiento int `json:"cantidadParosMantenimiento"`
	CantidadCalidad       int `json:"cantidadParosCalidad"`
	CantidadOperacion     int `json:"cantidadParosOperacion"`
	TiempoMantenimiento   int `json:"tiempoParosMantenimiento"`
	TiempoCalidad         int `json:"tiempoParosCalidad"`
	TiempoOperacion       int `json:"tiempoParosOperacion"`
}

// Agregar suma un paro de la categoría indicada al resumen. Categorías
// desconocidas cuentan como operación.
func (r *ResumenParos) Agregar(categoria string, minutos int) {
	switch categoria {
	case CategoriaMantenimiento:
		r.CantidadMantenimiento++
		r.TiempoMantenimiento += minutos
	case CategoriaCalidad:
		r.CantidadCalidad++
		r.TiempoCalidad += minutos
	default:
		r.CantidadOperacion++
		r.TiempoOperacion += minutos
	}
}

// Vacio indica que el resumen no registra ningún paro.
func (r ResumenParos) Vacio() bool {
	return r.CantidadMantenimiento == 0 && r.CantidadCalidad == 0 && r.CantidadOperacion == 0 &&
		r.TiempoMantenimiento == 0 && r.TiempoCalidad == 0 && r.TiempoOperacion == 0
}
