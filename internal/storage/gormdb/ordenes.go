package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"embotelladora-backend/internal/storage"
)

func (s *Storage) GetOrden(ctx context.Context, id int) (*storage.OrdenProduccion, error) {
	const op = "storage.gormdb.GetOrden"

	var orden storage.OrdenProduccion
	err := s.conn(ctx).
		Preload("LineaProduccion").
		Preload("Producto").
		First(&orden, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrOrdenNoEncontrada
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &orden, nil
}

// FiltroOrdenes acota el listado de órdenes del dashboard.
type FiltroOrdenes struct {
	Desde             *time.Time
	Hasta             *time.Time
	Estado            string
	LineaProduccionID *int
}

func (s *Storage) ListarOrdenes(ctx context.Context, f FiltroOrdenes) ([]*storage.OrdenProduccion, error) {
	const op = "storage.gormdb.ListarOrdenes"

	q := s.conn(ctx).Model(&storage.OrdenProduccion{}).
		Preload("LineaProduccion").
		Preload("Producto")

	if f.Desde != nil {
		q = q.Where("fecha_programada >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("fecha_programada < ?", *f.Hasta)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.LineaProduccionID != nil {
		q = q.Where("linea_produccion_id = ?", *f.LineaProduccionID)
	}

	var ordenes []*storage.OrdenProduccion
	if err := q.Order("fecha_programada DESC, id DESC").Find(&ordenes).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ordenes, nil
}

// IncrementarCajas suma el incremento al contador de la orden y ajusta
// estado y última actualización. El contador nunca se asigna en absoluto:
// la expresión cajas_producidas + ? mantiene la corrección ante llamadas
// concurrentes o reintentadas.
func (s *Storage) IncrementarCajas(ctx context.Context, id int, incremento int, estado string, ahora time.Time) (*storage.OrdenProduccion, error) {
	const op = "storage.gormdb.IncrementarCajas"

	res := s.conn(ctx).Model(&storage.OrdenProduccion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cajas_producidas":     gorm.Expr("cajas_producidas + ?", incremento),
			"estado":               estado,
			"ultima_actualizacion": ahora,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("%s: %w", op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrOrdenNoEncontrada
	}

	return s.GetOrden(ctx, id)
}

func (s *Storage) GuardarTiempoTranscurrido(ctx context.Context, id int, horas float64) error {
	const op = "storage.gormdb.GuardarTiempoTranscurrido"

	err := s.conn(ctx).Model(&storage.OrdenProduccion{}).
		Where("id = ?", id).
		UpdateColumn("tiempo_transcurrido_horas", horas).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) CrearRegistroHora(ctx context.Context, registro *storage.ProduccionPorHora) error {
	const op = "storage.gormdb.CrearRegistroHora"

	if err := s.conn(ctx).Create(registro).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SumarCajasDesde suma los registros por hora de la orden desde el inicio
// de la sesión. Es la base del total de cajas del historial al cierre.
func (s *Storage) SumarCajasDesde(ctx context.Context, ordenID int, desde time.Time) (int, error) {
	const op = "storage.gormdb.SumarCajasDesde"

	var total int
	err := s.conn(ctx).Model(&storage.ProduccionPorHora{}).
		Select("COALESCE(SUM(cajas_producidas), 0)").
		Where("orden_produccion_id = ? AND hora_registro >= ?", ordenID, desde).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}
