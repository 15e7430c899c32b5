package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.name, p.price, p.category_id, COALESCE(c.name, '') AS category_name,
	       p.expiry_date, p.created_at, p.updated_at
	FROM products p LEFT JOIN categories c ON c.id = p.category_id`

type productRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Price        decimal.Decimal `db:"price"`
	CategoryID   sql.NullString  `db:"category_id"`
	CategoryName string          `db:"category_name"`
	ExpiryDate   sql.NullTime    `db:"expiry_date"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r productRow) toEntity() *entity.Product {
	p := &entity.Product{
		ID:           r.ID,
		Name:         r.Name,
		Price:        r.Price,
		CategoryName: r.CategoryName,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.CategoryID.Valid {
		id := r.CategoryID.String
		p.CategoryID = &id
	}
	if r.ExpiryDate.Valid {
		t := r.ExpiryDate.Time
		p.ExpiryDate = &t
	}
	return p
}

// ProductRepo implementación de ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q sqlx.ExtContext
}

// NewProductRepository construye el adaptador. Pasar *sqlx.DB o *sqlx.Tx.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products(id, name, price, category_id, expiry_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price.String(), p.CategoryID, nullTime(p.ExpiryDate), p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.InvalidInputf("categoría inexistente")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, productSelect+` WHERE p.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity(), nil
}

// Update actualiza nombre, precio, categoría y vencimiento.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, price = ?, category_id = ?, expiry_date = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Price.String(), p.CategoryID, nullTime(p.ExpiryDate), p.UpdatedAt.UTC(), p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.InvalidInputf("categoría inexistente")
		}
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.selectProducts(ctx, productSelect+` ORDER BY p.created_at DESC, p.id LIMIT ? OFFSET ?`, limit, offset)
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate lee los productos indicados en orden de ID. En SQLite la transacción ya tiene
// la base para sí sola (una conexión), así que no hace falta bloqueo explícito.
func (r *ProductRepo) GetForUpdate(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(productSelect+` WHERE p.id IN (?) ORDER BY p.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	return r.selectProducts(ctx, r.q.Rebind(query), args...)
}

func (r *ProductRepo) selectProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
