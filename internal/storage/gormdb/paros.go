package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"embotelladora-backend/internal/storage"
)

func (s *Storage) CrearParo(ctx context.Context, paro *storage.Paro) error {
	const op = "storage.gormdb.CrearParo"

	if err := s.conn(ctx).Create(paro).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) ListarParosOrden(ctx context.Context, ordenID int) ([]*storage.Paro, error) {
	const op = "storage.gormdb.ListarParosOrden"

	var paros []*storage.Paro
	err := s.conn(ctx).
		Preload("TipoParo").
		Where("orden_produccion_id = ?", ordenID).
		Order("fecha_inicio DESC").
		Find(&paros).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paros, nil
}

// ParosPorCategoriaDesde agrupa los paros de la orden desde el inicio de la
// sesión por la categoría de su tipo y suma cantidad y minutos. Es el
// cálculo de respaldo cuando el cliente no manda resumen al cerrar.
func (s *Storage) ParosPorCategoriaDesde(ctx context.Context, ordenID int, desde time.Time) ([]storage.CategoriaParos, error) {
	const op = "storage.gormdb.ParosPorCategoriaDesde"

	var filas []storage.CategoriaParos
	err := s.conn(ctx).Model(&storage.Paro{}).
		Select("tipos_paro.categoria AS categoria, COUNT(*) AS cantidad, COALESCE(SUM(paros.tiempo_minutos), 0) AS minutos").
		Joins("JOIN tipos_paro ON tipos_paro.id = paros.tipo_paro_id").
		Where("paros.orden_produccion_id = ? AND paros.fecha_inicio >= ?", ordenID, desde).
		Group("tipos_paro.categoria").
		Scan(&filas).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return filas, nil
}

func (s *Storage) GetTipoParo(ctx context.Context, id int) (*storage.TipoParo, error) {
	const op = "storage.gormdb.GetTipoParo"

	var tipo storage.TipoParo
	if err := s.conn(ctx).First(&tipo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrTipoParoNoEncontrado
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tipo, nil
}

func (s *Storage) ListarTiposParo(ctx context.Context) ([]*storage.TipoParo, error) {
	const op = "storage.gormdb.ListarTiposParo"

	var tipos []*storage.TipoParo
	if err := s.conn(ctx).Order("nombre").Find(&tipos).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tipos, nil
}

func (s *Storage) CrearTipoParo(ctx context.Context, tipo *storage.TipoParo) error {
	const op = "storage.gormdb.CrearTipoParo"

	if err := s.conn(ctx).Create(tipo).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
