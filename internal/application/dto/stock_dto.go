package dto

import "time"

// RefillRequest body para POST /api/stock.
type RefillRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// StockMovementResponse un movimiento del historial de stock.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StockResponse stock actual de un producto; History solo en GET /api/stock/:productId.
type StockResponse struct {
	ProductID   string                  `json:"productId"`
	ProductName string                  `json:"productName"`
	Stock       int64                   `json:"stock"`
	History     []StockMovementResponse `json:"history,omitempty"`
	Page        *PageResponse           `json:"page,omitempty"`
}
