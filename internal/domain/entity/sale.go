package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una línea vendida dentro de un lote (checkout). Se crea siempre junto a su
// StockMovement negativo en la misma transacción.
type Sale struct {
	ID          string
	BatchID     string // agrupa las líneas de un mismo checkout (número de factura)
	ProductID   string
	ProductName string // solo lectura (join)
	Quantity    int64
	UnitPrice   decimal.Decimal // precio capturado al momento de la venta
	CreatedAt   time.Time
}

// Subtotal devuelve Quantity × UnitPrice.
func (s *Sale) Subtotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity))
}
