package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleSelect = `
	SELECT s.id, s.batch_id, s.product_id, p.name AS product_name, s.quantity, s.unit_price, s.created_at
	FROM sales s JOIN products p ON p.id = s.product_id`

type saleRow struct {
	ID          string          `db:"id"`
	BatchID     string          `db:"batch_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int64           `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	CreatedAt   time.Time       `db:"created_at"`
}

// SaleRepo implementación sobre SQLite (usable con db o tx).
type SaleRepo struct {
	q sqlx.ExtContext
}

// NewSaleRepository construye el adaptador. Pasar *sqlx.DB o *sqlx.Tx.
func NewSaleRepository(q sqlx.ExtContext) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una línea de venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sales(id, batch_id, product_id, quantity, unit_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.BatchID, s.ProductID, s.Quantity, s.UnitPrice.String(), s.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// List lista ventas, más recientes primero, con nombre de producto.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return r.selectSales(ctx, saleSelect+` ORDER BY s.created_at DESC, s.rowid DESC LIMIT ? OFFSET ?`, limit, offset)
}

// ListByBatch lista las líneas de una factura en orden de registro.
func (r *SaleRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Sale, error) {
	return r.selectSales(ctx, saleSelect+` WHERE s.batch_id = ? ORDER BY s.rowid`, batchID)
}

// CountByProduct cuenta las ventas del producto.
func (r *SaleRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM sales WHERE product_id = ?`, productID); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

func (r *SaleRepo) selectSales(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	var rows []saleRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := make([]*entity.Sale, 0, len(rows))
	for _, s := range rows {
		list = append(list, &entity.Sale{
			ID: s.ID, BatchID: s.BatchID, ProductID: s.ProductID, ProductName: s.ProductName,
			Quantity: s.Quantity, UnitPrice: s.UnitPrice, CreatedAt: s.CreatedAt,
		})
	}
	return list, nil
}
