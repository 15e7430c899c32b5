package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/application/sales"
	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/pkg/logger"
)

// SaleHandler maneja checkout, historial y recibos de ventas.
type SaleHandler struct {
	checkout *sales.CheckoutUseCase
	query    *sales.QueryUseCase
	receipt  *sales.ReceiptUseCase
	log      *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(checkout *sales.CheckoutUseCase, query *sales.QueryUseCase, receipt *sales.ReceiptUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{checkout: checkout, query: query, receipt: receipt, log: log}
}

// Checkout godoc
// @Summary      Registrar venta (checkout)
// @Description  Valida todas las líneas contra el stock y las registra juntas; si alguna falla no se registra ninguna.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "invoiceId, date e items"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sales/checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseSaleDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeValidation, Message: "date debe ser RFC3339 o YYYY-MM-DD"})
	}

	batch := sales.SaleBatch{BatchID: in.InvoiceID, Date: date, Items: make([]sales.LineItem, 0, len(in.Items))}
	for _, it := range in.Items {
		batch.Items = append(batch.Items, sales.LineItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.Price})
	}

	res, err := h.checkout.Checkout(c.UserContext(), batch)
	if err != nil {
		if errors.Is(err, domain.ErrStorageFailure) {
			h.log.Error().Err(err).Str("invoice_id", res.BatchID).Str("state", string(res.State)).Msg("checkout abortado por fallo de almacenamiento")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: dto.CodeInternal, Message: res.Reason})
		}
		return respondError(c, h.log, err)
	}

	h.log.Info().Str("invoice_id", res.BatchID).Int("lines", len(res.Lines)).Str("total", res.TotalAmount.String()).Msg("venta registrada")

	out := dto.CheckoutResponse{
		Success:     true,
		InvoiceID:   res.BatchID,
		Sold:        make([]dto.SoldLineResponse, 0, len(res.Lines)),
		TotalAmount: res.TotalAmount,
	}
	for _, l := range res.Lines {
		out.Sold = append(out.Sold, dto.SoldLineResponse{
			SaleID:    l.SaleID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	out, err := h.query.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Detalle de una factura
// @Description  Agrupa todas las líneas con ese invoiceId; date es la fecha de la línea más reciente.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        invoiceId  path  string  true  "Número de factura"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{invoiceId} [get]
func (h *SaleHandler) GetReceipt(c *fiber.Ctx) error {
	out, err := h.query.Receipt(c.UserContext(), c.Params("invoiceId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// DownloadReceiptPDF godoc
// @Summary      Descargar recibo en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        invoiceId  path  string  true  "Número de factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{invoiceId}/receipt.pdf [get]
func (h *SaleHandler) DownloadReceiptPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.DownloadPDF(c.UserContext(), c.Params("invoiceId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// parseSaleDate acepta RFC3339 o YYYY-MM-DD; vacío devuelve tiempo cero (el caso de uso usa la hora actual).
func parseSaleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(time.DateOnly, raw, time.UTC)
}
