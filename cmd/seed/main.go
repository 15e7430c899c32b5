// seed crea el usuario admin, categorías y productos de demostración con stock inicial.
// Se puede ejecutar varias veces: omite usuarios, categorías y productos que ya existen.
//
// Uso: go run ./cmd/seed (misma configuración por variables de entorno que cmd/api)
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/application/auth"
	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/application/inventory"
	"github.com/jhoicas/smart-inventory/internal/application/usecase"
	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/infrastructure/storage"
	"github.com/jhoicas/smart-inventory/pkg/config"
	"github.com/jhoicas/smart-inventory/pkg/logger"
)

type demoProduct struct {
	name     string
	category string
	price    string
	stock    int64
}

var demoProducts = []demoProduct{
	{"Arroz 1kg", "Granos", "4500", 40},
	{"Frijol 500g", "Granos", "6200.50", 25},
	{"Leche entera 1L", "Lácteos", "3900", 30},
	{"Queso campesino 250g", "Lácteos", "8700", 8},
	{"Gaseosa 400ml", "Bebidas", "2800", 60},
	{"Agua 600ml", "Bebidas", "1900", 3},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("seed")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer store.Close()

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	categoryUC := usecase.NewCategoryUseCase(store.Categories)
	productUC := usecase.NewProductUseCase(store.Products, store.Categories, store.Movements, store.Sales)
	stockUC := inventory.NewStockUseCase(store.TxRunner, store.Products, store.Movements)

	if err := seedAdmin(ctx, authUC, cfg.Seed); err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("username", cfg.Seed.AdminUsername).Msg("usuario admin listo")

	categories, err := seedCategories(ctx, categoryUC)
	if err != nil {
		log.Fatal().Err(err).Msg("crear categorías")
	}

	existing, err := productUC.List(ctx, dto.PageRequest{Limit: 100})
	if err != nil {
		log.Fatal().Err(err).Msg("listar productos")
	}
	byName := make(map[string]bool, len(existing.Items))
	for _, p := range existing.Items {
		byName[p.Name] = true
	}

	created := 0
	for _, dp := range demoProducts {
		if byName[dp.name] {
			continue
		}
		p, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:       dp.name,
			Price:      decimal.RequireFromString(dp.price),
			CategoryID: categories[dp.category],
		})
		if err != nil {
			log.Fatal().Err(err).Str("product", dp.name).Msg("crear producto")
		}
		if _, err := stockUC.Refill(ctx, dto.RefillRequest{ProductID: p.ID, Quantity: dp.stock}); err != nil {
			log.Fatal().Err(err).Str("product", dp.name).Msg("stock inicial")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", len(demoProducts)-created).Msg("productos de demostración")
}

func seedAdmin(ctx context.Context, uc *auth.AuthUseCase, cfg config.SeedConfig) error {
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		return nil
	}
	return err
}

// seedCategories crea las categorías que falten y devuelve nombre -> id.
func seedCategories(ctx context.Context, uc *usecase.CategoryUseCase) (map[string]string, error) {
	ids := make(map[string]string)
	for _, dp := range demoProducts {
		if _, ok := ids[dp.category]; ok {
			continue
		}
		c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: dp.category})
		if err == nil {
			ids[dp.category] = c.ID
			continue
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		ids[dp.category] = ""
	}

	list, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if id, ok := ids[c.Name]; ok && id == "" {
			ids[c.Name] = c.ID
		}
	}
	return ids, nil
}
