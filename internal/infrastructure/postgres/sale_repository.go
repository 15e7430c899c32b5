package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una línea de venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, batch_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.BatchID, s.ProductID, s.Quantity, s.UnitPrice, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// List lista ventas, más recientes primero, con nombre de producto.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT s.id, s.batch_id, s.product_id, p.name, s.quantity, s.unit_price, s.created_at
		FROM sales s JOIN products p ON p.id = s.product_id
		ORDER BY s.created_at DESC, s.batch_id, s.id LIMIT $1 OFFSET $2`
	return r.query(ctx, "list sales", query, limit, offset)
}

// ListByBatch lista las líneas de una factura en orden de registro.
func (r *SaleRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Sale, error) {
	query := `
		SELECT s.id, s.batch_id, s.product_id, p.name, s.quantity, s.unit_price, s.created_at
		FROM sales s JOIN products p ON p.id = s.product_id
		WHERE s.batch_id = $1
		ORDER BY s.seq`
	return r.query(ctx, "list sales by batch", query, batchID)
}

// CountByProduct cuenta las ventas del producto.
func (r *SaleRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

func (r *SaleRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BatchID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
