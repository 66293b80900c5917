package storage

import "time"

// Entidades principales del generador de reportes.
const (
	EntidadProduccion        = "produccion"
	EntidadProducto          = "producto"
	EntidadLinea             = "linea"
	EntidadParos             = "paros"
	EntidadMateriaPrima      = "materia_prima"
	EntidadDesviacionCalidad = "desviacion_calidad"
)

// Dimensiones de agrupación.
const (
	AgrupacionDia      = "dia"
	AgrupacionSemana   = "semana"
	AgrupacionMes      = "mes"
	AgrupacionLinea    = "linea"
	AgrupacionProducto = "producto"
	AgrupacionTurno    = "turno"
)

// ReportFiltros acota las consultas de agregación de un reporte.
type ReportFiltros struct {
	Desde             time.Time
	Hasta             time.Time
	LineaProduccionID *int
	ProductoID        *int
	Turno             *string
	TipoParoID        *int

	// Sólo paros con causa asociada (reportes por materia prima o por
	// desviación de calidad).
	ConMateriaPrima      bool
	ConDesviacionCalidad bool
}

// TotalesProduccion son los agregados de órdenes en un rango.
type TotalesProduccion struct {
	Producidas   int `json:"producidas"`
	Planificadas int `json:"planificadas"`
	Ordenes      int `json:"ordenes"`
}

// TotalesParos son los agregados de paros en un rango.
type TotalesParos struct {
	Cantidad int `json:"cantidad"`
	Minutos  int `json:"minutos"`
}

// GrupoProduccion es una fila de producción agrupada por una dimensión.
type GrupoProduccion struct {
	Clave        string `json:"clave"`
	Producidas   int    `json:"producidas"`
	Planificadas int    `json:"planificadas"`
}

// GrupoParos es una fila de paros agrupada por una dimensión.
type GrupoParos struct {
	Clave    string `json:"clave"`
	Cantidad int    `json:"cantidad"`
	Minutos  int    `json:"minutos"`
}

// CategoriaParos es una fila del groupBy de paros por categoría de tipo.
type CategoriaParos struct {
	Categoria string `json:"categoria"`
	Cantidad  int    `json:"cantidad"`
	Minutos   int    `json:"minutos"`
}

// KPI es un indicador listo para las tarjetas del dashboard. Variacion es
// el delta porcentual contra el período anterior y se omite cuando el
// período anterior no tiene denominador.
type KPI struct {
	Titulo    string   `json:"titulo"`
	Valor     float64  `json:"valor"`
	Unidad    string   `json:"unidad,omitempty"`
	Variacion *float64 `json:"variacion,omitempty"`
}

// PuntoGrafica es un punto de la serie para el componente de gráficas.
type PuntoGrafica struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Columna describe el esquema de la tabla del reporte para la agrupación
// elegida.
type Columna struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Fila es un renglón de la tabla, con claves según Columns.
type Fila map[string]any

// ReportResult es la salida común de los seis generadores.
type ReportResult struct {
	KPIs      []KPI          `json:"kpis"`
	ChartData []PuntoGrafica `json:"chartData"`
	TableData []Fila         `json:"tableData"`
	Columns   []Columna      `json:"columns"`
}
