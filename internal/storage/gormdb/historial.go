package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"embotelladora-backend/internal/storage"
)

func (s *Storage) CrearHistorial(ctx context.Context, historial *storage.ProduccionHistorial) error {
	const op = "storage.gormdb.CrearHistorial"

	if err := s.conn(ctx).Create(historial).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetHistorial(ctx context.Context, id int) (*storage.ProduccionHistorial, error) {
	const op = "storage.gormdb.GetHistorial"

	var historial storage.ProduccionHistorial
	if err := s.conn(ctx).First(&historial, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrHistorialNoEncontrado
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &historial, nil
}

func (s *Storage) HistorialActivo(ctx context.Context, ordenID int) (*storage.ProduccionHistorial, error) {
	const op = "storage.gormdb.HistorialActivo"

	var historial storage.ProduccionHistorial
	err := s.conn(ctx).
		Where("orden_produccion_id = ? AND activo = ?", ordenID, true).
		Order("fecha_inicio DESC").
		First(&historial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrHistorialNoEncontrado
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &historial, nil
}

// CerrarHistorialesActivos cierra cualquier sesión que siga abierta para la
// orden. Sostiene la invariante de una sola sesión activa cuando se abre
// una nueva.
func (s *Storage) CerrarHistorialesActivos(ctx context.Context, ordenID int, fin time.Time) error {
	const op = "storage.gormdb.CerrarHistorialesActivos"

	err := s.conn(ctx).Model(&storage.ProduccionHistorial{}).
		Where("orden_produccion_id = ? AND activo = ?", ordenID, true).
		Updates(map[string]interface{}{
			"activo":    false,
			"fecha_fin": fin,
		}).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CerrarHistorial cierra la sesión con el resumen de paros. Los acumulados
// por categoría se incrementan con expresiones en base, nunca se
// reemplazan: un reintento de cierre sólo suma el delta que trae esa
// llamada. El total de cajas sí se fija, porque se deriva de los registros
// por hora y es estable ante reintentos.
func (s *Storage) CerrarHistorial(ctx context.Context, id int, cierre storage.CierreHistorial) error {
	const op = "storage.gormdb.CerrarHistorial"

	res := s.conn(ctx).Model(&storage.ProduccionHistorial{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"activo":           false,
			"fecha_fin":        cierre.FechaFin,
			"cajas_producidas": cierre.CajasProducidas,

			"cantidad_paros_mantenimiento": gorm.Expr("cantidad_paros_mantenimiento + ?", cierre.Resumen.CantidadMantenimiento),
			"cantidad_paros_calidad":       gorm.Expr("cantidad_paros_calidad + ?", cierre.Resumen.CantidadCalidad),
			"cantidad_paros_operacion":     gorm.Expr("cantidad_paros_operacion + ?", cierre.Resumen.CantidadOperacion),
			"tiempo_paros_mantenimiento":   gorm.Expr("tiempo_paros_mantenimiento + ?", cierre.Resumen.TiempoMantenimiento),
			"tiempo_paros_calidad":         gorm.Expr("tiempo_paros_calidad + ?", cierre.Resumen.TiempoCalidad),
			"tiempo_paros_operacion":       gorm.Expr("tiempo_paros_operacion + ?", cierre.Resumen.TiempoOperacion),
		})
	if res.Error != nil {
		return fmt.Errorf("%s: %w", op, res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrHistorialNoEncontrado
	}

	return nil
}
