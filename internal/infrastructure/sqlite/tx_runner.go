package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sqlx.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// database/sql revierte la tx por su cuenta si ctx se cancela antes del commit.
func (r *TxRunner) Run(ctx context.Context, fn func(uow inventory.UnitOfWork) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&unitOfWork{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type unitOfWork struct {
	tx *sqlx.Tx
}

func (u *unitOfWork) Products() repository.ProductRepository { return NewProductRepository(u.tx) }
func (u *unitOfWork) Movements() repository.StockMovementRepository {
	return NewStockMovementRepository(u.tx)
}
func (u *unitOfWork) Sales() repository.SaleRepository { return NewSaleRepository(u.tx) }
