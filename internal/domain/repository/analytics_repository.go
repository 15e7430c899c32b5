package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel stock derivado de un producto (para reportes).
type StockLevel struct {
	ProductID   string
	ProductName string
	Quantity    int64
}

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	CountCategories(ctx context.Context) (int, error)
	TotalUnitsInStock(ctx context.Context) (int64, error)
	// LowStock lista productos con stock <= threshold, ordenados de menor a mayor.
	LowStock(ctx context.Context, threshold int64, limit int) ([]StockLevel, error)
	// SalesRevenue suma Quantity × UnitPrice de las ventas con fecha >= since (todas si since es cero).
	SalesRevenue(ctx context.Context, since time.Time) (decimal.Decimal, int, error)
}
