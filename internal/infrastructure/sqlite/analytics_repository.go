package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	db *sqlx.DB
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// CountProducts total de productos.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

// CountCategories total de categorías.
func (r *AnalyticsRepo) CountCategories(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM categories`)
}

// TotalUnitsInStock suma de todos los movimientos.
func (r *AnalyticsRepo) TotalUnitsInStock(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COALESCE(SUM(quantity), 0) FROM stock_movements`); err != nil {
		return 0, fmt.Errorf("total units: %w", err)
	}
	return n, nil
}

// LowStock productos con stock <= threshold, de menor a mayor.
func (r *AnalyticsRepo) LowStock(ctx context.Context, threshold int64, limit int) ([]repository.StockLevel, error) {
	var rows []struct {
		ProductID   string `db:"id"`
		ProductName string `db:"name"`
		Quantity    int64  `db:"stock"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.id, p.name, COALESCE(SUM(m.quantity), 0) AS stock
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		GROUP BY p.id, p.name
		HAVING COALESCE(SUM(m.quantity), 0) <= ?
		ORDER BY stock ASC, p.name
		LIMIT ?`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	out := make([]repository.StockLevel, 0, len(rows))
	for _, l := range rows {
		out = append(out, repository.StockLevel{ProductID: l.ProductID, ProductName: l.ProductName, Quantity: l.Quantity})
	}
	return out, nil
}

// SalesRevenue ingresos y número de facturas desde since. La suma se hace en Go con decimal:
// SQLite multiplicaría los precios TEXT como REAL.
func (r *AnalyticsRepo) SalesRevenue(ctx context.Context, since time.Time) (decimal.Decimal, int, error) {
	var rows []struct {
		BatchID   string          `db:"batch_id"`
		Quantity  int64           `db:"quantity"`
		UnitPrice decimal.Decimal `db:"unit_price"`
	}
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT batch_id, quantity, unit_price FROM sales WHERE created_at >= ?`, since.UTC()); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales revenue: %w", err)
	}
	total := decimal.Zero
	batches := make(map[string]struct{})
	for _, s := range rows {
		total = total.Add(s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity)))
		batches[s.BatchID] = struct{}{}
	}
	return total, len(batches), nil
}

func (r *AnalyticsRepo) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
