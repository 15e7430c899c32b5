package repository

import (
	"context"

	"github.com/jhoicas/smart-inventory/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	// GetForUpdate obtiene los productos indicados y bloquea sus filas hasta el fin de la transacción.
	// Los productos inexistentes simplemente no aparecen en el resultado.
	GetForUpdate(ctx context.Context, ids []string) ([]*entity.Product, error)
}
