package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

type movementRow struct {
	ID        string    `db:"id"`
	ProductID string    `db:"product_id"`
	Quantity  int64     `db:"quantity"`
	Reason    string    `db:"reason"`
	Reference string    `db:"reference"`
	CreatedAt time.Time `db:"created_at"`
}

// StockMovementRepo implementación sobre SQLite (usable con db o tx). Solo inserta.
type StockMovementRepo struct {
	q sqlx.ExtContext
}

// NewStockMovementRepository construye el adaptador. Pasar *sqlx.DB o *sqlx.Tx.
func NewStockMovementRepository(q sqlx.ExtContext) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_movements(id, product_id, quantity, reason, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProductID, m.Quantity, m.Reason, m.Reference, m.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// SumByProduct devuelve el stock derivado del producto (0 sin movimientos).
func (r *StockMovementRepo) SumByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	if err := sqlx.GetContext(ctx, r.q, &total,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = ?`, productID); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return total, nil
}

// ListByProduct lista movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var rows []movementRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, product_id, quantity, reason, reference, created_at
		FROM stock_movements WHERE product_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	list := make([]*entity.StockMovement, 0, len(rows))
	for _, m := range rows {
		list = append(list, &entity.StockMovement{
			ID: m.ID, ProductID: m.ProductID, Quantity: m.Quantity,
			Reason: m.Reason, Reference: m.Reference, CreatedAt: m.CreatedAt,
		})
	}
	return list, nil
}

// CountByProduct cuenta los movimientos del producto.
func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM stock_movements WHERE product_id = ?`, productID); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}
