package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// El stock no vive aquí: se deriva de la suma de StockMovement.
type Product struct {
	ID           string
	Name         string
	Price        decimal.Decimal // precio de venta vigente
	CategoryID   *string         // nil si no tiene categoría
	CategoryName string          // solo lectura (join), vacío si no aplica
	ExpiryDate   *time.Time      // nil para productos no perecederos
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
