package repository

import (
	"context"

	"github.com/jhoicas/smart-inventory/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Sale, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
