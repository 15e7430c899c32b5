package sales

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
)

// ReceiptPDFGenerator puerto de salida para renderizar el recibo de una factura.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *dto.ReceiptResponse) ([]byte, error)
}

// ReceiptUseCase genera el PDF de una factura a partir de sus ventas registradas.
type ReceiptUseCase struct {
	query     *QueryUseCase
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(query *QueryUseCase, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{query: query, generator: generator}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// DownloadPDF devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si la factura no existe.
func (uc *ReceiptUseCase) DownloadPDF(ctx context.Context, batchID string) ([]byte, string, error) {
	receipt, err := uc.query.Receipt(ctx, batchID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("factura_%s.pdf", unsafeFilename.ReplaceAllString(receipt.InvoiceID, "_"))
	return pdfBytes, filename, nil
}
