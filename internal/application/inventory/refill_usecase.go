package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

// StockUseCase reposiciones y consultas de stock por producto.
type StockUseCase struct {
	txRunner TxRunner
	ledger   *StockLedger
}

// NewStockUseCase construye el caso de uso. Las lecturas usan repositorios de pool.
func NewStockUseCase(txRunner TxRunner, products repository.ProductRepository, movements repository.StockMovementRepository) *StockUseCase {
	return &StockUseCase{
		txRunner: txRunner,
		ledger:   NewStockLedger(products, movements),
	}
}

// Refill registra una entrada positiva de stock. Bloquea la fila del producto (SELECT FOR UPDATE)
// igual que el checkout, de modo que el stock devuelto es consistente con las ventas concurrentes.
func (uc *StockUseCase) Refill(ctx context.Context, in dto.RefillRequest) (*dto.StockResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, domain.InvalidInputf("productId es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.InvalidInputf("la cantidad debe ser mayor que cero")
	}

	var out *dto.StockResponse
	err := uc.txRunner.Run(ctx, func(uow UnitOfWork) error {
		locked, err := uow.Products().GetForUpdate(ctx, []string{productID})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return domain.ErrNotFound
		}
		ledger := LedgerFor(uow)
		current, err := ledger.CurrentStock(ctx, productID)
		if err != nil {
			return err
		}
		if _, err := domain.AddQuantity(current, in.Quantity); err != nil {
			return err
		}
		if _, err := ledger.RecordMovement(ctx, productID, in.Quantity, entity.MovementReasonRefill, "", time.Now().UTC()); err != nil {
			return err
		}
		stock, err := uow.Movements().SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		out = &dto.StockResponse{ProductID: productID, ProductName: locked[0].Name, Stock: stock}
		return nil
	})
	if err != nil {
		return nil, domain.StorageFailure(err)
	}
	return out, nil
}

// GetStock devuelve el stock actual del producto y una página de su historial.
func (uc *StockUseCase) GetStock(ctx context.Context, productID string, page dto.PageRequest) (*dto.StockResponse, error) {
	page.DefaultPage()
	p, err := uc.ledger.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.ledger.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.ledger.History(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	history := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		history = append(history, dto.StockMovementResponse{
			ID:        m.ID,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
		})
	}
	return &dto.StockResponse{
		ProductID:   p.ID,
		ProductName: p.Name,
		Stock:       stock,
		History:     history,
		Page:        &dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
