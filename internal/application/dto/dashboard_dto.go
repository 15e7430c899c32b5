package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	Products      int           `json:"products"`
	Categories    int           `json:"categories"`
	UnitsInStock  int64         `json:"unitsInStock"`
	LowStockLimit int64         `json:"lowStockThreshold"`
	LowStock      []LowStockDTO `json:"lowStock"`

	// Ventas del día actual (desde 00:00 hora local del servidor)
	TodaySales      decimal.Decimal `json:"todaySales"`
	TodaySalesCount int             `json:"todaySalesCount"`

	// Acumulado histórico
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalSalesCount int             `json:"totalSalesCount"`
}

// LowStockDTO producto con stock en o por debajo del umbral.
type LowStockDTO struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Stock       int64  `json:"stock"`
}
