package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"embotelladora-backend/internal/storage"
)

// Expresiones de agrupación sobre órdenes (fecha_programada) y sobre paros
// (fecha_inicio). La clave resultante es la etiqueta de la serie y de la
// primera columna de la tabla.
var clavesProduccion = map[string]string{
	storage.AgrupacionDia:      "DATE(ordenes_produccion.fecha_programada)",
	storage.AgrupacionSemana:   "DATE_FORMAT(ordenes_produccion.fecha_programada, '%x-S%v')",
	storage.AgrupacionMes:      "DATE_FORMAT(ordenes_produccion.fecha_programada, '%Y-%m')",
	storage.AgrupacionLinea:    "lineas_produccion.nombre",
	storage.AgrupacionProducto: "productos.nombre",
	storage.AgrupacionTurno:    "ordenes_produccion.turno",
}

var clavesParos = map[string]string{
	storage.AgrupacionDia:      "DATE(paros.fecha_inicio)",
	storage.AgrupacionSemana:   "DATE_FORMAT(paros.fecha_inicio, '%x-S%v')",
	storage.AgrupacionMes:      "DATE_FORMAT(paros.fecha_inicio, '%Y-%m')",
	storage.AgrupacionLinea:    "lineas_produccion.nombre",
	storage.AgrupacionProducto: "productos.nombre",
	storage.AgrupacionTurno:    "ordenes_produccion.turno",

	// Dimensiones propias de los reportes de paros.
	"tipo_paro":          "tipos_paro.nombre",
	"categoria":          "tipos_paro.categoria",
	"materia_prima":      "materias_primas.nombre",
	"desviacion_calidad": "desviaciones_calidad.nombre",
}

func (s *Storage) consultaProduccion(ctx context.Context, f storage.ReportFiltros) *gorm.DB {
	q := s.conn(ctx).Model(&storage.OrdenProduccion{}).
		Joins("JOIN lineas_produccion ON lineas_produccion.id = ordenes_produccion.linea_produccion_id").
		Joins("JOIN productos ON productos.id = ordenes_produccion.producto_id").
		Where("ordenes_produccion.fecha_programada >= ? AND ordenes_produccion.fecha_programada < ?", f.Desde, f.Hasta)

	if f.LineaProduccionID != nil {
		q = q.Where("ordenes_produccion.linea_produccion_id = ?", *f.LineaProduccionID)
	}
	if f.ProductoID != nil {
		q = q.Where("ordenes_produccion.producto_id = ?", *f.ProductoID)
	}
	if f.Turno != nil {
		q = q.Where("ordenes_produccion.turno = ?", *f.Turno)
	}

	return q
}

func (s *Storage) TotalesProduccion(ctx context.Context, f storage.ReportFiltros) (*storage.TotalesProduccion, error) {
	const op = "storage.gormdb.TotalesProduccion"

	var totales storage.TotalesProduccion
	err := s.consultaProduccion(ctx, f).
		Select("COALESCE(SUM(ordenes_produccion.cajas_producidas), 0) AS producidas, " +
			"COALESCE(SUM(ordenes_produccion.cajas_planificadas), 0) AS planificadas, " +
			"COUNT(*) AS ordenes").
		Scan(&totales).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &totales, nil
}

func (s *Storage) GruposProduccion(ctx context.Context, f storage.ReportFiltros, agrupacion string) ([]storage.GrupoProduccion, error) {
	const op = "storage.gormdb.GruposProduccion"

	clave, ok := clavesProduccion[agrupacion]
	if !ok {
		return nil, fmt.Errorf("%s: agrupación no soportada: %s", op, agrupacion)
	}

	var grupos []storage.GrupoProduccion
	err := s.consultaProduccion(ctx, f).
		Select(clave + " AS clave, " +
			"COALESCE(SUM(ordenes_produccion.cajas_producidas), 0) AS producidas, " +
			"COALESCE(SUM(ordenes_produccion.cajas_planificadas), 0) AS planificadas").
		Group("clave").
		Order("clave").
		Scan(&grupos).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return grupos, nil
}

func (s *Storage) consultaParos(ctx context.Context, f storage.ReportFiltros, agrupacion string) *gorm.DB {
	q := s.conn(ctx).Model(&storage.Paro{}).
		Joins("JOIN tipos_paro ON tipos_paro.id = paros.tipo_paro_id").
		Joins("JOIN ordenes_produccion ON ordenes_produccion.id = paros.orden_produccion_id").
		Joins("JOIN lineas_produccion ON lineas_produccion.id = paros.linea_produccion_id").
		Joins("JOIN productos ON productos.id = ordenes_produccion.producto_id").
		Where("paros.fecha_inicio >= ? AND paros.fecha_inicio < ?", f.Desde, f.Hasta)

	if f.ConMateriaPrima || agrupacion == "materia_prima" {
		q = q.Joins("JOIN materias_primas ON materias_primas.id = paros.materia_prima_id")
	}
	if f.ConDesviacionCalidad || agrupacion == "desviacion_calidad" {
		q = q.Joins("JOIN desviaciones_calidad ON desviaciones_calidad.id = paros.desviacion_calidad_id")
	}

	if f.LineaProduccionID != nil {
		q = q.Where("paros.linea_produccion_id = ?", *f.LineaProduccionID)
	}
	if f.ProductoID != nil {
		q = q.Where("ordenes_produccion.producto_id = ?", *f.ProductoID)
	}
	if f.Turno != nil {
		q = q.Where("ordenes_produccion.turno = ?", *f.Turno)
	}
	if f.TipoParoID != nil {
		q = q.Where("paros.tipo_paro_id = ?", *f.TipoParoID)
	}

	return q
}

func (s *Storage) TotalesParos(ctx context.Context, f storage.ReportFiltros) (*storage.TotalesParos, error) {
	const op = "storage.gormdb.TotalesParos"

	var totales storage.TotalesParos
	err := s.consultaParos(ctx, f, "").
		Select("COUNT(*) AS cantidad, COALESCE(SUM(paros.tiempo_minutos), 0) AS minutos").
		Scan(&totales).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &totales, nil
}

func (s *Storage) GruposParos(ctx context.Context, f storage.ReportFiltros, agrupacion string) ([]storage.GrupoParos, error) {
	const op = "storage.gormdb.GruposParos"

	clave, ok := clavesParos[agrupacion]
	if !ok {
		return nil, fmt.Errorf("%s: agrupación no soportada: %s", op, agrupacion)
	}

	var grupos []storage.GrupoParos
	err := s.consultaParos(ctx, f, agrupacion).
		Select(clave + " AS clave, COUNT(*) AS cantidad, COALESCE(SUM(paros.tiempo_minutos), 0) AS minutos").
		Group("clave").
		Order("clave").
		Scan(&grupos).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return grupos, nil
}
