package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"embotelladora-backend/internal/storage"
)

// Opciones resuelve las entradas de un combo del dashboard. dependeDe
// encadena los combos jerárquicos: sistemas por línea, subsistemas por
// sistema, subsubsistemas por subsistema. categoria acota los tipos de
// paro cuando el reporte lo pide.
func (s *Storage) Opciones(ctx context.Context, tipo string, dependeDe *int, categoria string) ([]storage.Opcion, error) {
	const op = "storage.gormdb.Opciones"

	if tipo == "turno" {
		return []storage.Opcion{
			{ID: 1, Nombre: storage.TurnoMatutino},
			{ID: 2, Nombre: storage.TurnoVespertino},
			{ID: 3, Nombre: storage.TurnoNocturno},
		}, nil
	}

	var q *gorm.DB
	switch tipo {
	case "linea_produccion":
		q = s.conn(ctx).Model(&storage.LineaProduccion{})
	case "producto":
		q = s.conn(ctx).Model(&storage.Producto{})
	case "tipo_paro":
		q = s.conn(ctx).Model(&storage.TipoParo{})
		if categoria != "" {
			q = q.Where("categoria = ?", categoria)
		}
	case "sistema":
		q = s.conn(ctx).Model(&storage.Sistema{})
		if dependeDe != nil {
			q = q.Where("linea_produccion_id = ?", *dependeDe)
		}
	case "subsistema":
		q = s.conn(ctx).Model(&storage.Subsistema{})
		if dependeDe != nil {
			q = q.Where("sistema_id = ?", *dependeDe)
		}
	case "subsubsistema":
		q = s.conn(ctx).Model(&storage.Subsubsistema{})
		if dependeDe != nil {
			q = q.Where("subsistema_id = ?", *dependeDe)
		}
	case "materia_prima":
		q = s.conn(ctx).Model(&storage.MateriaPrima{})
	case "desviacion_calidad":
		q = s.conn(ctx).Model(&storage.DesviacionCalidad{})
	default:
		return nil, fmt.Errorf("%s: tipo de filtro no soportado: %s", op, tipo)
	}

	var opciones []storage.Opcion
	if err := q.Select("id, nombre").Order("nombre").Scan(&opciones).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return opciones, nil
}
