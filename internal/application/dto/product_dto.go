package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"categoryId"`
	ExpiryDate *time.Time      `json:"expiryDate,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (parcial; stock solo vía movimientos).
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *string          `json:"categoryId"`
	ExpiryDate *time.Time       `json:"expiryDate"`
}

// ProductResponse salida de un producto con su stock actual.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *string         `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
	Stock        int64           `json:"stock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
