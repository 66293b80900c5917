package gormdb

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"embotelladora-backend/internal/config"
	"embotelladora-backend/internal/storage"
)

type Storage struct {
	db *gorm.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.gormdb.New"

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				Colorful:      false,
				LogLevel:      logger.Error,
				SlowThreshold: time.Second,
			},
		),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if cfg.AutoMigrate {
		err = db.AutoMigrate(
			&storage.LineaProduccion{},
			&storage.Producto{},
			&storage.Sistema{},
			&storage.Subsistema{},
			&storage.Subsubsistema{},
			&storage.DesviacionCalidad{},
			&storage.MateriaPrima{},
			&storage.TipoParo{},
			&storage.OrdenProduccion{},
			&storage.ProduccionPorHora{},
			&storage.Paro{},
			&storage.ProduccionHistorial{},
		)
		if err != nil {
			return nil, fmt.Errorf("%s: migrate: %w", op, err)
		}
	}

	return &Storage{db: db}, nil
}

type txKey struct{}

// EnTransaccion corre fn dentro de una transacción; el contexto devuelto a
// fn lleva la transacción y todos los métodos del Storage la usan. Un error
// de fn revierte todo.
func (s *Storage) EnTransaccion(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Storage) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}
