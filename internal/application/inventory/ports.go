package inventory

import (
	"context"

	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

// UnitOfWork expone los repositorios atados a una misma transacción de BD.
// Todo lo leído y escrito a través de ellos se confirma o descarta junto.
type UnitOfWork interface {
	Products() repository.ProductRepository
	Movements() repository.StockMovementRepository
	Sales() repository.SaleRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD.
// Si fn devuelve error (o el commit falla) la transacción se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}
