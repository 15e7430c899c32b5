package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smart-inventory/internal/application/analytics"
	"github.com/jhoicas/smart-inventory/internal/application/auth"
	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/application/sales"
	"github.com/jhoicas/smart-inventory/internal/application/usecase"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CategoryUC   *usecase.CategoryUseCase
	ProductUC    *usecase.ProductUseCase
	StockUC      *inventory.StockUseCase
	CheckoutUC   *sales.CheckoutUseCase
	SalesQueryUC *sales.QueryUseCase
	ReceiptUC    *sales.ReceiptUseCase
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público salvo verify)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/verify", AuthMiddleware(deps.JWTSecret), authHandler.Verify)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, log)
	stock.Post("/", adminOnly, stockHandler.Refill)
	stock.Get("/:productId", stockHandler.Get)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CheckoutUC, deps.SalesQueryUC, deps.ReceiptUC, log)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/checkout", saleHandler.Checkout)
	salesGroup.Get("/:invoiceId/receipt.pdf", saleHandler.DownloadReceiptPDF)
	salesGroup.Get("/:invoiceId", saleHandler.GetReceipt)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
