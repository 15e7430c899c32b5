package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest una línea del carrito.
type CheckoutItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CheckoutRequest body para POST /api/sales/checkout.
// InvoiceID y Date son opcionales; Date acepta RFC3339 o YYYY-MM-DD.
type CheckoutRequest struct {
	InvoiceID string                `json:"invoiceId,omitempty"`
	Date      string                `json:"date,omitempty"`
	Items     []CheckoutItemRequest `json:"items"`
}

// SoldLineResponse línea registrada de una venta.
type SoldLineResponse struct {
	SaleID    string          `json:"saleId"`
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CheckoutResponse respuesta de un checkout confirmado.
type CheckoutResponse struct {
	Success     bool               `json:"success"`
	InvoiceID   string             `json:"invoiceId"`
	Sold        []SoldLineResponse `json:"sold"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
}

// SaleResponse una venta del historial.
type SaleResponse struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoiceId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Date        time.Time       `json:"date"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ReceiptResponse detalle de una factura (lote de venta).
type ReceiptResponse struct {
	InvoiceID   string          `json:"invoiceId"`
	Date        time.Time       `json:"date"`
	Lines       []SaleResponse  `json:"lines"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
