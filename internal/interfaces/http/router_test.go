package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory/internal/application/analytics"
	"github.com/jhoicas/smart-inventory/internal/application/auth"
	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/application/sales"
	"github.com/jhoicas/smart-inventory/internal/application/usecase"
	"github.com/jhoicas/smart-inventory/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/smart-inventory/internal/interfaces/http"
	"github.com/jhoicas/smart-inventory/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre SQLite en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReceiptPDF struct{}

func (fakeReceiptPDF) GenerateReceiptPDF(_ context.Context, r *dto.ReceiptResponse) ([]byte, error) {
	return []byte("%PDF-fake " + r.InvoiceID), nil
}

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	productRepo := sqlite.NewProductRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	movementRepo := sqlite.NewStockMovementRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)
	runner := sqlite.NewTxRunner(db)

	query := sales.NewQueryUseCase(saleRepo)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		CategoryUC:   usecase.NewCategoryUseCase(categoryRepo),
		ProductUC:    usecase.NewProductUseCase(productRepo, categoryRepo, movementRepo, saleRepo),
		StockUC:      inventory.NewStockUseCase(runner, productRepo, movementRepo),
		CheckoutUC:   sales.NewCheckoutUseCase(runner),
		SalesQueryUC: query,
		ReceiptUC:    sales.NewReceiptUseCase(query, fakeReceiptPDF{}),
		DashboardUC:  analytics.NewDashboardUseCase(sqlite.NewAnalyticsRepository(db), 5),
		JWTSecret:    testJWTSecret,
		Logger:       logger.Nop(),
	})
	return app
}

// call hace una petición JSON y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func loginAs(t *testing.T, app *fiber.App, username, role string) string {
	t.Helper()
	status := call(t, app, http.MethodPost, "/api/auth/signup", "", dto.RegisterRequest{Username: username, Password: "secreta123", Role: role}, nil)
	require.Equal(t, http.StatusCreated, status)
	var out dto.LoginResponse
	status = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: "secreta123"}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// seedCatalog crea una categoría y un producto con stock inicial vía API; devuelve el id del producto.
func seedCatalog(t *testing.T, app *fiber.App, adminToken, name string, stock int64) string {
	t.Helper()
	var cat dto.CategoryResponse
	status := call(t, app, http.MethodPost, "/api/categories", adminToken, dto.CreateCategoryRequest{Name: "Cat " + name}, &cat)
	require.Equal(t, http.StatusCreated, status)

	var prod dto.ProductResponse
	status = call(t, app, http.MethodPost, "/api/products", adminToken, dto.CreateProductRequest{
		Name: name, Price: decimal.NewFromInt(50), CategoryID: cat.ID,
	}, &prod)
	require.Equal(t, http.StatusCreated, status)

	if stock > 0 {
		status = call(t, app, http.MethodPost, "/api/stock", adminToken, dto.RefillRequest{ProductID: prod.ID, Quantity: stock}, nil)
		require.Equal(t, http.StatusCreated, status)
	}
	return prod.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_VentaSimple(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	productID := seedCatalog(t, app, admin, "Arroz", 5)

	var out dto.CheckoutResponse
	status := call(t, app, http.MethodPost, "/api/sales/checkout", admin, dto.CheckoutRequest{
		InvoiceID: "F-100",
		Date:      "2024-03-01",
		Items:     []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 2, Price: decimal.NewFromInt(50)}},
	}, &out)

	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Success)
	assert.Equal(t, "F-100", out.InvoiceID)
	require.Len(t, out.Sold, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(out.TotalAmount), "total: %s", out.TotalAmount)
	assert.True(t, decimal.NewFromInt(100).Equal(out.Sold[0].Subtotal))

	var stock dto.StockResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stock/"+productID, admin, nil, &stock))
	assert.Equal(t, int64(3), stock.Stock)

	var receipt dto.ReceiptResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sales/F-100", admin, nil, &receipt))
	assert.Len(t, receipt.Lines, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(receipt.TotalAmount))
}

func TestCheckout_StockInsuficienteNoRegistraNada(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	a := seedCatalog(t, app, admin, "A", 5)
	b := seedCatalog(t, app, admin, "B", 1)

	var errOut dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/sales/checkout", admin, dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			{ProductID: a, Quantity: 3, Price: decimal.NewFromInt(10)},
			{ProductID: b, Quantity: 2, Price: decimal.NewFromInt(10)},
		},
	}, &errOut)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeInsufficientStock, errOut.Code)
	assert.Contains(t, errOut.Message, "B")

	var stock dto.StockResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stock/"+a, admin, nil, &stock))
	assert.Equal(t, int64(5), stock.Stock, "A no debe descontarse")

	var list dto.SaleListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/sales", admin, nil, &list))
	assert.Empty(t, list.Items)
}

func TestCheckout_Validaciones(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	productID := seedCatalog(t, app, admin, "Leche", 5)

	cases := []struct {
		name string
		body dto.CheckoutRequest
	}{
		{"sin items", dto.CheckoutRequest{}},
		{"cantidad cero", dto.CheckoutRequest{Items: []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 0, Price: decimal.NewFromInt(1)}}}},
		{"precio negativo", dto.CheckoutRequest{Items: []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(-1)}}}},
		{"producto inexistente", dto.CheckoutRequest{Items: []dto.CheckoutItemRequest{{ProductID: "no-existe", Quantity: 1, Price: decimal.NewFromInt(1)}}}},
		{"precio con tres decimales", dto.CheckoutRequest{Items: []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 1, Price: decimal.RequireFromString("19.995")}}}},
		{"cantidades que desbordan", dto.CheckoutRequest{Items: []dto.CheckoutItemRequest{{ProductID: productID, Quantity: math.MaxInt64, Price: decimal.NewFromInt(1)}, {ProductID: productID, Quantity: 3, Price: decimal.NewFromInt(1)}}}},
		{"fecha inválida", dto.CheckoutRequest{Date: "01/03/2024", Items: []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(1)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errOut dto.ErrorResponse
			status := call(t, app, http.MethodPost, "/api/sales/checkout", admin, tc.body, &errOut)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, dto.CodeValidation, errOut.Code)
		})
	}
}

func TestCheckout_JSONMalformado(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")

	req := httptest.NewRequest(http.MethodPost, "/api/sales/checkout", bytes.NewBufferString("{items:"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckout_SinToken(t *testing.T) {
	app := buildAPI(t)
	status := call(t, app, http.MethodPost, "/api/sales/checkout", "", dto.CheckoutRequest{}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, permisos y recibos
// ──────────────────────────────────────────────────────────────────────────────

func TestVendedor_NoPuedeReabastecerPeroSiVender(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	vendedor := loginAs(t, app, "caja1", "vendedor")
	productID := seedCatalog(t, app, admin, "Pan", 4)

	status := call(t, app, http.MethodPost, "/api/stock", vendedor, dto.RefillRequest{ProductID: productID, Quantity: 10}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = call(t, app, http.MethodPost, "/api/sales/checkout", vendedor, dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 4, Price: decimal.NewFromInt(3)}},
	}, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCategoria_Duplicada409(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/categories", admin, dto.CreateCategoryRequest{Name: "Lácteos"}, nil))
	var errOut dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/categories", admin, dto.CreateCategoryRequest{Name: "Lácteos"}, &errOut))
	assert.Equal(t, dto.CodeConflict, errOut.Code)
}

func TestProducto_PrecioQueNoSePuedeGuardarExacto400(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	var cat dto.CategoryResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/categories", admin, dto.CreateCategoryRequest{Name: "Varios"}, &cat))

	var errOut dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/products", admin, dto.CreateProductRequest{
		Name: "Chicle", Price: decimal.RequireFromString("0.004"), CategoryID: cat.ID,
	}, &errOut)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, errOut.Code)
}

func TestProducto_EliminarConHistorial409(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	withStock := seedCatalog(t, app, admin, "Con stock", 2)
	empty := seedCatalog(t, app, admin, "Sin stock", 0)

	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodDelete, "/api/products/"+withStock, admin, nil, nil))
	assert.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, "/api/products/"+empty, admin, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/products/"+empty, admin, nil, nil))
}

func TestRecibo_PDFYNoEncontrado(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	productID := seedCatalog(t, app, admin, "Café", 3)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/sales/checkout", admin, dto.CheckoutRequest{
		InvoiceID: "F-7",
		Items:     []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 1, Price: decimal.NewFromInt(8)}},
	}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/sales/F-7/receipt.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_F-7.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-fake F-7", string(body))

	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/sales/no-existe", admin, nil, nil))
}

func TestAuth_VerifyYCredencialesInvalidas(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")

	var me dto.UserResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/auth/verify", admin, nil, &me))
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, "admin", me.Role)

	status := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "incorrecta"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDashboard_Resumen(t *testing.T) {
	app := buildAPI(t)
	admin := loginAs(t, app, "admin", "")
	productID := seedCatalog(t, app, admin, "Azúcar", 6)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/sales/checkout", admin, dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{ProductID: productID, Quantity: 2, Price: decimal.RequireFromString("12.50")}},
	}, nil))

	var out dto.DashboardSummaryDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/dashboard", admin, nil, &out))
	assert.Equal(t, int64(4), out.UnitsInStock)
	assert.Equal(t, 1, out.TotalSalesCount)
	assert.True(t, decimal.NewFromInt(25).Equal(out.TotalSales), "total: %s", out.TotalSales)
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, productID, out.LowStock[0].ProductID)
}
