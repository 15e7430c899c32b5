package inventory_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createProduct(t *testing.T, db *sqlx.DB, name string) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.New().String(), Name: name, Price: decimal.NewFromInt(1), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewProductRepository(db).Create(context.Background(), p))
	return p.ID
}

func TestLedger_StockDerivadoDeMovimientos(t *testing.T) {
	db := openDB(t)
	id := createProduct(t, db, "Azúcar")
	ledger := inventory.NewStockLedger(sqlite.NewProductRepository(db), sqlite.NewStockMovementRepository(db))
	ctx := context.Background()

	stock, err := ledger.CurrentStock(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, stock, "sin movimientos el stock es 0")

	_, err = ledger.RecordMovement(ctx, id, 10, entity.MovementReasonRefill, "", time.Time{})
	require.NoError(t, err)
	_, err = ledger.RecordMovement(ctx, id, -4, entity.MovementReasonSale, "F-1", time.Now())
	require.NoError(t, err)

	stock, err = ledger.CurrentStock(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stock)

	history, total, err := ledger.History(ctx, id, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, history, 2)
}

func TestLedger_ProductoInexistente(t *testing.T) {
	db := openDB(t)
	ledger := inventory.NewStockLedger(sqlite.NewProductRepository(db), sqlite.NewStockMovementRepository(db))

	_, err := ledger.CurrentStock(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLedger_RechazaMovimientoInvalido(t *testing.T) {
	db := openDB(t)
	id := createProduct(t, db, "Sal")
	ledger := inventory.NewStockLedger(sqlite.NewProductRepository(db), sqlite.NewStockMovementRepository(db))

	_, err := ledger.RecordMovement(context.Background(), id, 0, entity.MovementReasonRefill, "", time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = ledger.RecordMovement(context.Background(), id, 3, "AJUSTE", "", time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestStockUseCase_Refill(t *testing.T) {
	db := openDB(t)
	id := createProduct(t, db, "Café")
	uc := inventory.NewStockUseCase(sqlite.NewTxRunner(db), sqlite.NewProductRepository(db), sqlite.NewStockMovementRepository(db))
	ctx := context.Background()

	out, err := uc.Refill(ctx, dto.RefillRequest{ProductID: id, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Stock)
	assert.Equal(t, "Café", out.ProductName)

	out, err = uc.Refill(ctx, dto.RefillRequest{ProductID: id, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Stock)

	got, err := uc.GetStock(ctx, id, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Stock)
	assert.Len(t, got.History, 1)
	assert.Equal(t, 2, got.Page.Total)
}

func TestStockUseCase_RefillInvalido(t *testing.T) {
	db := openDB(t)
	id := createProduct(t, db, "Té")
	uc := inventory.NewStockUseCase(sqlite.NewTxRunner(db), sqlite.NewProductRepository(db), sqlite.NewStockMovementRepository(db))
	ctx := context.Background()

	_, err := uc.Refill(ctx, dto.RefillRequest{ProductID: id, Quantity: 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Refill(ctx, dto.RefillRequest{ProductID: "", Quantity: 5})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Refill(ctx, dto.RefillRequest{ProductID: "no-existe", Quantity: 5})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.GetStock(ctx, "no-existe", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStockUseCase_RefillQueDesbordaElStock(t *testing.T) {
	db := openDB(t)
	id := createProduct(t, db, "Sal")
	uc := inventory.NewStockUseCase(sqlite.NewTxRunner(db), sqlite.NewProductRepository(db), sqlite.NewStockMovementRepository(db))
	ctx := context.Background()

	_, err := uc.Refill(ctx, dto.RefillRequest{ProductID: id, Quantity: math.MaxInt64 - 1})
	require.NoError(t, err)

	_, err = uc.Refill(ctx, dto.RefillRequest{ProductID: id, Quantity: 5})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err = %v", err)

	got, err := uc.GetStock(ctx, id, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-1), got.Stock)
	assert.Len(t, got.History, 1)
}
