// Package analytics contiene el resumen de inventario y ventas del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

const dashboardLowStockLimit = 10 // productos listados en el widget de stock bajo

// DashboardUseCase genera el resumen de catálogo, stock y ventas.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold int64
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. lowStockThreshold: stock en o por debajo del cual
// un producto aparece como stock bajo.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, lowStockThreshold int64) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Las consultas de catálogo, stock bajo y ventas corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type countsResult struct {
		products, categories int
		units                int64
		err                  error
	}
	type lowStockResult struct {
		levels []repository.StockLevel
		err    error
	}
	type revenueResult struct {
		amount decimal.Decimal
		count  int
		err    error
	}

	countsCh := make(chan countsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	todayCh := make(chan revenueResult, 1)
	totalCh := make(chan revenueResult, 1)

	go func() {
		var r countsResult
		if r.products, r.err = uc.analyticsRepo.CountProducts(ctx); r.err == nil {
			if r.categories, r.err = uc.analyticsRepo.CountCategories(ctx); r.err == nil {
				r.units, r.err = uc.analyticsRepo.TotalUnitsInStock(ctx)
			}
		}
		countsCh <- r
	}()
	go func() {
		levels, err := uc.analyticsRepo.LowStock(ctx, uc.lowStockThreshold, dashboardLowStockLimit)
		lowCh <- lowStockResult{levels, err}
	}()
	go func() {
		amount, count, err := uc.analyticsRepo.SalesRevenue(ctx, todayStart)
		todayCh <- revenueResult{amount, count, err}
	}()
	go func() {
		amount, count, err := uc.analyticsRepo.SalesRevenue(ctx, time.Time{})
		totalCh <- revenueResult{amount, count, err}
	}()

	counts := <-countsCh
	low := <-lowCh
	today := <-todayCh
	total := <-totalCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if total.err != nil {
		return nil, fmt.Errorf("dashboard: ventas totales: %w", total.err)
	}

	lowStock := make([]dto.LowStockDTO, 0, len(low.levels))
	for _, l := range low.levels {
		lowStock = append(lowStock, dto.LowStockDTO{ProductID: l.ProductID, ProductName: l.ProductName, Stock: l.Quantity})
	}

	return &dto.DashboardSummaryDTO{
		Products:        counts.products,
		Categories:      counts.categories,
		UnitsInStock:    counts.units,
		LowStockLimit:   uc.lowStockThreshold,
		LowStock:        lowStock,
		TodaySales:      today.amount.Round(2),
		TodaySalesCount: today.count,
		TotalSales:      total.amount.Round(2),
		TotalSalesCount: total.count,
	}, nil
}
