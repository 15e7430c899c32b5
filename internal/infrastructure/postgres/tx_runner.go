package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// El aislamiento entre checkouts lo dan los SELECT ... FOR UPDATE sobre products.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(uow inventory.UnitOfWork) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// El rollback debe ejecutarse aunque ctx ya esté cancelado.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(&unitOfWork{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type unitOfWork struct {
	tx pgx.Tx
}

func (u *unitOfWork) Products() repository.ProductRepository { return NewProductRepository(u.tx) }
func (u *unitOfWork) Movements() repository.StockMovementRepository {
	return NewStockMovementRepository(u.tx)
}
func (u *unitOfWork) Sales() repository.SaleRepository { return NewSaleRepository(u.tx) }
