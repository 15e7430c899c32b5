package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountProducts total de productos del catálogo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountCategories total de categorías.
func (r *AnalyticsRepo) CountCategories(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// TotalUnitsInStock suma de todos los movimientos (unidades disponibles en total).
func (r *AnalyticsRepo) TotalUnitsInStock(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0)::BIGINT FROM stock_movements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("total units: %w", err)
	}
	return n, nil
}

// LowStock productos con stock <= threshold, de menor a mayor stock.
func (r *AnalyticsRepo) LowStock(ctx context.Context, threshold int64, limit int) ([]repository.StockLevel, error) {
	const query = `
	SELECT p.id, p.name, COALESCE(SUM(m.quantity), 0)::BIGINT AS stock
	FROM products p
	LEFT JOIN stock_movements m ON m.product_id = p.id
	GROUP BY p.id, p.name
	HAVING COALESCE(SUM(m.quantity), 0) <= $1
	ORDER BY stock ASC, p.name
	LIMIT $2`
	rows, err := r.pool.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var out []repository.StockLevel
	for rows.Next() {
		var l repository.StockLevel
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SalesRevenue ingresos (Σ quantity × unit_price) y número de facturas desde since.
func (r *AnalyticsRepo) SalesRevenue(ctx context.Context, since time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT COALESCE(SUM(quantity * unit_price), 0), COUNT(DISTINCT batch_id)
	FROM sales
	WHERE created_at >= $1`
	var (
		revenue decimal.Decimal
		count   int
	)
	if err := r.pool.QueryRow(ctx, query, since).Scan(&revenue, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales revenue: %w", err)
	}
	return revenue, count, nil
}
