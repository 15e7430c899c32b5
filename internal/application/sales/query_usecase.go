package sales

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre ventas registradas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// List devuelve las ventas más recientes primero, con el nombre del producto.
func (uc *QueryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Receipt devuelve las líneas de una factura y su total. domain.ErrNotFound si no tiene ventas.
// Un invoiceId reutilizado agrupa todos sus lotes; Date es la fecha de la línea más reciente.
func (uc *QueryUseCase) Receipt(ctx context.Context, batchID string) (*dto.ReceiptResponse, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.saleRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	out := &dto.ReceiptResponse{
		InvoiceID:   batchID,
		Date:        list[0].CreatedAt,
		Lines:       make([]dto.SaleResponse, 0, len(list)),
		TotalAmount: decimal.Zero,
	}
	for _, s := range list {
		line := toSaleResponse(s)
		if line.Date.After(out.Date) {
			out.Date = line.Date
		}
		out.Lines = append(out.Lines, line)
		out.TotalAmount = out.TotalAmount.Add(line.Subtotal)
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          s.ID,
		InvoiceID:   s.BatchID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		Price:       s.UnitPrice,
		Subtotal:    s.Subtotal(),
		Date:        s.CreatedAt,
	}
}
