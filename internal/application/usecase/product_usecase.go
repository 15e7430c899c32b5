package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/smart-inventory/internal/application/dto"
	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
	saleRepo     repository.SaleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, movementRepo: movementRepo, saleRepo: saleRepo}
}

// Create crea un nuevo producto con stock 0. La categoría debe existir.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.InvalidInputf("name es requerido")
	}
	if err := domain.ValidatePrice("el precio", in.Price); err != nil {
		return nil, err
	}
	category, err := uc.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Price:        in.Price,
		CategoryID:   &category.ID,
		CategoryName: category.Name,
		ExpiryDate:   in.ExpiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, 0), nil
}

// GetByID obtiene un producto con su stock actual. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	stock, err := uc.movementRepo.SumByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// Update actualiza los campos enviados. No permite modificar stock (se maneja vía movimientos).
// Devuelve (nil, nil) si el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.InvalidInputf("name no puede estar vacío")
		}
		product.Name = name
	}
	if in.Price != nil {
		if err := domain.ValidatePrice("el precio", *in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		category, err := uc.resolveCategory(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = &category.ID
		product.CategoryName = category.Name
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	stock, err := uc.movementRepo.SumByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// List lista productos con paginación, incluyendo nombre de categoría y stock actual.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		stock, err := uc.movementRepo.SumByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toProductResponse(p, stock))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto sin historial. Si ya tiene movimientos o ventas devuelve
// domain.ErrConflict: el historial de stock no se reescribe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	movements, err := uc.movementRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	sales, err := uc.saleRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if movements > 0 || sales > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) resolveCategory(ctx context.Context, categoryID string) (*entity.Category, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, domain.InvalidInputf("categoryId es requerido")
	}
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.InvalidInputf("categoría no encontrada: %s", categoryID)
	}
	return category, nil
}

func toProductResponse(p *entity.Product, stock int64) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		ExpiryDate:   p.ExpiryDate,
		Stock:        stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
