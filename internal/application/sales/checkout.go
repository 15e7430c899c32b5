package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
)

// CheckoutState estado de un intento de checkout.
type CheckoutState string

// Received -> Validating -> Committing -> Committed | Aborted. Un intento abortado no se reintenta.
const (
	StateReceived   CheckoutState = "RECEIVED"
	StateValidating CheckoutState = "VALIDATING"
	StateCommitting CheckoutState = "COMMITTING"
	StateCommitted  CheckoutState = "COMMITTED"
	StateAborted    CheckoutState = "ABORTED"
)

// ReasonStorageFailure mensaje expuesto cuando el almacenamiento falla; la causa solo se registra en logs.
const ReasonStorageFailure = "no se pudo registrar la venta, intente de nuevo"

// LineItem una línea solicitada: producto, cantidad y precio unitario tal como llegan del cliente.
type LineItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// SaleBatch lote de líneas que se confirman juntas o no se confirman.
// BatchID (número de factura) y Date son opcionales.
type SaleBatch struct {
	BatchID string
	Date    time.Time
	Items   []LineItem
}

// CommittedLine línea registrada en un checkout confirmado.
type CommittedLine struct {
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// CheckoutResult resultado de Checkout. Si Committed es false, Reason explica el rechazo
// y no se escribió nada.
type CheckoutResult struct {
	State       CheckoutState
	Committed   bool
	BatchID     string
	Date        time.Time
	SaleIDs     []string
	Lines       []CommittedLine
	TotalAmount decimal.Decimal
	Reason      string
}

// CheckoutUseCase coordinador de ventas: valida el lote contra el stock y registra ventas y
// movimientos en una sola transacción.
type CheckoutUseCase struct {
	txRunner inventory.TxRunner
	now      func() time.Time
	newID    func() string
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner inventory.TxRunner) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
}

// Checkout valida y confirma el lote de forma atómica.
//
// Errores:
//   - domain.ErrInvalidInput: lote vacío, línea mal formada o producto inexistente.
//   - *domain.InsufficientStockError (errors.Is ErrInsufficientStock): el primer producto, en el
//     orden del lote, cuya cantidad agregada supera el stock.
//   - domain.ErrStorageFailure: cualquier fallo de BD, incluido el commit o un ctx cancelado.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, batch SaleBatch) (CheckoutResult, error) {
	res := CheckoutResult{State: StateReceived}

	// Validación sintáctica antes de tocar el almacenamiento
	if err := validateBatch(batch); err != nil {
		return abort(res, err)
	}

	res.BatchID = strings.TrimSpace(batch.BatchID)
	if res.BatchID == "" {
		res.BatchID = uc.newID()
	}
	res.Date = batch.Date
	if res.Date.IsZero() {
		res.Date = uc.now()
	}

	res.State = StateValidating
	requested, order := aggregate(batch.Items)

	var lines []CommittedLine
	err := uc.txRunner.Run(ctx, func(uow inventory.UnitOfWork) error {
		// Orden fijo de bloqueo para que dos lotes con productos en común no se bloqueen mutuamente
		ids := append([]string(nil), order...)
		sort.Strings(ids)
		locked, err := uow.Products().GetForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		names := make(map[string]string, len(locked))
		for _, p := range locked {
			names[p.ID] = p.Name
		}
		for _, id := range order {
			if _, ok := names[id]; !ok {
				return domain.InvalidInputf("producto no encontrado: %s", id)
			}
		}

		ledger := inventory.LedgerFor(uow)
		for _, id := range order {
			available, err := ledger.CurrentStock(ctx, id)
			if err != nil {
				return err
			}
			if requested[id] > available {
				return &domain.InsufficientStockError{
					ProductID:   id,
					ProductName: names[id],
					Requested:   requested[id],
					Available:   available,
				}
			}
		}

		res.State = StateCommitting
		lines = make([]CommittedLine, 0, len(batch.Items))
		for _, item := range batch.Items {
			sale := &entity.Sale{
				ID:        uc.newID(),
				BatchID:   res.BatchID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				CreatedAt: res.Date,
			}
			if err := uow.Sales().Create(ctx, sale); err != nil {
				return err
			}
			if _, err := ledger.RecordMovement(ctx, item.ProductID, -item.Quantity, entity.MovementReasonSale, res.BatchID, res.Date); err != nil {
				return err
			}
			lines = append(lines, CommittedLine{
				SaleID:    sale.ID,
				ProductID: sale.ProductID,
				Quantity:  sale.Quantity,
				UnitPrice: sale.UnitPrice,
				Subtotal:  sale.Subtotal(),
			})
		}
		return nil
	})
	if err != nil {
		return abort(res, domain.StorageFailure(err))
	}

	res.State = StateCommitted
	res.Committed = true
	res.Lines = lines
	res.TotalAmount = decimal.Zero
	res.SaleIDs = make([]string, 0, len(lines))
	for _, l := range lines {
		res.SaleIDs = append(res.SaleIDs, l.SaleID)
		res.TotalAmount = res.TotalAmount.Add(l.Subtotal)
	}
	return res, nil
}

func abort(res CheckoutResult, err error) (CheckoutResult, error) {
	res.State = StateAborted
	res.Committed = false
	res.SaleIDs = nil
	res.Lines = nil
	res.TotalAmount = decimal.Zero
	if errors.Is(err, domain.ErrStorageFailure) {
		res.Reason = ReasonStorageFailure
	} else {
		res.Reason = err.Error()
	}
	return res, err
}

func validateBatch(batch SaleBatch) error {
	if len(batch.Items) == 0 {
		return domain.InvalidInputf("el lote no tiene productos")
	}
	totals := make(map[string]int64, len(batch.Items))
	for i, item := range batch.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return domain.InvalidInputf("línea %d: productId es requerido", i+1)
		}
		if item.Quantity <= 0 {
			return domain.InvalidInputf("línea %d: la cantidad debe ser mayor que cero", i+1)
		}
		if err := domain.ValidatePrice(fmt.Sprintf("línea %d: el precio", i+1), item.UnitPrice); err != nil {
			return err
		}
		// La suma por producto debe caber en int64 antes de compararla con el stock
		sum, err := domain.AddQuantity(totals[item.ProductID], item.Quantity)
		if err != nil {
			return domain.InvalidInputf("línea %d: la cantidad total del producto %s excede el máximo permitido", i+1, item.ProductID)
		}
		totals[item.ProductID] = sum
	}
	return nil
}

// aggregate suma las cantidades por producto y devuelve los productos en orden de primera aparición.
// validateBatch ya garantizó que las sumas no desbordan.
func aggregate(items []LineItem) (map[string]int64, []string) {
	requested := make(map[string]int64, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}
	return requested, order
}
