package entity

import "time"

// Motivos de un movimiento de stock.
const (
	MovementReasonRefill = "REFILL" // reposición (cantidad positiva)
	MovementReasonSale   = "SALE"   // descuento por venta (cantidad negativa)
)

// StockMovement es un ajuste con signo del inventario de un producto. Solo se inserta, nunca se edita.
type StockMovement struct {
	ID        string
	ProductID string
	Quantity  int64  // positivo entrada, negativo salida
	Reason    string // REFILL, SALE
	Reference string // BatchID de la venta; vacío en reposiciones
	CreatedAt time.Time
}
