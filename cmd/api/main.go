package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/smart-inventory/internal/application/analytics"
	"github.com/jhoicas/smart-inventory/internal/application/auth"
	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/application/sales"
	"github.com/jhoicas/smart-inventory/internal/application/usecase"
	infrapdf "github.com/jhoicas/smart-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/smart-inventory/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/smart-inventory/internal/interfaces/http"
	"github.com/jhoicas/smart-inventory/pkg/config"
	"github.com/jhoicas/smart-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión al almacenamiento")
	}
	defer store.Close()

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(store.Categories)
	productUC := usecase.NewProductUseCase(store.Products, store.Categories, store.Movements, store.Sales)
	stockUC := inventory.NewStockUseCase(store.TxRunner, store.Products, store.Movements)
	checkoutUC := sales.NewCheckoutUseCase(store.TxRunner)
	salesQueryUC := sales.NewQueryUseCase(store.Sales)
	receiptUC := sales.NewReceiptUseCase(salesQueryUC, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	dashboardUC := analytics.NewDashboardUseCase(store.Analytics, cfg.Stock.LowStockThreshold)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	if cfg.HTTP.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimitMax,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return !strings.HasPrefix(c.Path(), "/api")
			},
		}))
	}

	// Swagger UI en http://localhost:<port>/docs (solo si existe el JSON generado)
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Smart Inventory API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CategoryUC:   categoryUC,
		ProductUC:    productUC,
		StockUC:      stockUC,
		CheckoutUC:   checkoutUC,
		SalesQueryUC: salesQueryUC,
		ReceiptUC:    receiptUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log.Named("api"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
