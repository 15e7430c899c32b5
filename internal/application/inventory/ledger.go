package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

// StockLedger deriva el stock de cada producto a partir de sus movimientos con signo.
// No guarda estado propio: todo vive en el almacenamiento.
type StockLedger struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

// NewStockLedger construye el ledger sobre repositorios de pool (lecturas fuera de transacción).
func NewStockLedger(products repository.ProductRepository, movements repository.StockMovementRepository) *StockLedger {
	return &StockLedger{products: products, movements: movements}
}

// LedgerFor construye un ledger que lee y escribe dentro de la transacción de uow.
func LedgerFor(uow UnitOfWork) *StockLedger {
	return NewStockLedger(uow.Products(), uow.Movements())
}

// CurrentStock devuelve la suma de movimientos del producto (0 si no tiene ninguno).
// domain.ErrNotFound si el producto no existe.
func (l *StockLedger) CurrentStock(ctx context.Context, productID string) (int64, error) {
	p, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, domain.ErrNotFound
	}
	return l.movements.SumByProduct(ctx, productID)
}

// RecordMovement agrega un movimiento con signo. No verifica que haya stock suficiente:
// eso es responsabilidad del llamador dentro de la misma transacción.
func (l *StockLedger) RecordMovement(ctx context.Context, productID string, quantity int64, reason, reference string, at time.Time) (string, error) {
	if productID == "" || quantity == 0 {
		return "", domain.ErrInvalidInput
	}
	switch reason {
	case entity.MovementReasonRefill, entity.MovementReasonSale:
	default:
		return "", domain.InvalidInputf("motivo de movimiento desconocido: %q", reason)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		Reason:    reason,
		Reference: reference,
		CreatedAt: at,
	}
	if err := l.movements.Create(ctx, mov); err != nil {
		return "", err
	}
	return mov.ID, nil
}

// History lista los movimientos del producto, más recientes primero, y el total para paginar.
func (l *StockLedger) History(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	list, err := l.movements.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := l.movements.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
