package repository

import (
	"context"

	"github.com/jhoicas/smart-inventory/internal/domain/entity"
)

// StockMovementRepository es el log de movimientos de stock: solo inserción y consultas.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// SumByProduct devuelve la suma de cantidades con signo del producto (0 si no hay movimientos).
	SumByProduct(ctx context.Context, productID string) (int64, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
