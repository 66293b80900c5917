package storage

// Catálogos planos: líneas, productos, árbol de equipos y causas.

type LineaProduccion struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:120;not null;uniqueIndex" json:"nombre"`
}

func (LineaProduccion) TableName() string { return "lineas_produccion" }

type Producto struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:120;not null;uniqueIndex" json:"nombre"`
}

func (Producto) TableName() string { return "productos" }

type Sistema struct {
	ID                int    `gorm:"primaryKey" json:"id"`
	Nombre            string `gorm:"size:120;not null" json:"nombre"`
	LineaProduccionID int    `gorm:"index;not null" json:"lineaProduccionId"`
}

func (Sistema) TableName() string { return "sistemas" }

type Subsistema struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	Nombre    string `gorm:"size:120;not null" json:"nombre"`
	SistemaID int    `gorm:"index;not null" json:"sistemaId"`
}

func (Subsistema) TableName() string { return "subsistemas" }

type Subsubsistema struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Nombre       string `gorm:"size:120;not null" json:"nombre"`
	SubsistemaID int    `gorm:"index;not null" json:"subsistemaId"`
}

func (Subsubsistema) TableName() string { return "subsubsistemas" }

type DesviacionCalidad struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:120;not null" json:"nombre"`
}

func (DesviacionCalidad) TableName() string { return "desviaciones_calidad" }

type MateriaPrima struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:120;not null" json:"nombre"`
}

func (MateriaPrima) TableName() string { return "materias_primas" }

// Opcion es una entrada de un combo en cascada del dashboard.
type Opcion struct {
	ID     int    `json:"id"`
	Nombre string `json:"name"`
}
