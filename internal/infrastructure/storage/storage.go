// Package storage abre el almacenamiento configurado (PostgreSQL o SQLite) y expone
// los repositorios y el TxRunner detrás de las interfaces de dominio.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
	"github.com/jhoicas/smart-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/smart-inventory/internal/infrastructure/sqlite"
	"github.com/jhoicas/smart-inventory/pkg/config"
)

// Store repositorios listos para inyectar en los casos de uso.
type Store struct {
	Driver     string
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Movements  repository.StockMovementRepository
	Sales      repository.SaleRepository
	Analytics  repository.AnalyticsRepository
	TxRunner   inventory.TxRunner

	close func() error
}

// Close libera el pool o la conexión subyacente.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open conecta según cfg.Driver.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     cfg.Driver,
			Users:      postgres.NewUserRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Movements:  postgres.NewStockMovementRepository(pool),
			Sales:      postgres.NewSaleRepository(pool),
			Analytics:  postgres.NewAnalyticsRepository(pool),
			TxRunner:   postgres.NewTxRunner(pool),
			close:      func() error { pool.Close(); return nil },
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:     cfg.Driver,
			Users:      sqlite.NewUserRepository(db),
			Categories: sqlite.NewCategoryRepository(db),
			Products:   sqlite.NewProductRepository(db),
			Movements:  sqlite.NewStockMovementRepository(db),
			Sales:      sqlite.NewSaleRepository(db),
			Analytics:  sqlite.NewAnalyticsRepository(db),
			TxRunner:   sqlite.NewTxRunner(db),
			close:      db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("storage: driver no soportado %q", cfg.Driver)
	}
}
