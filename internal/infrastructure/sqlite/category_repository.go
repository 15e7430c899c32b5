package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/smart-inventory/internal/domain"
	"github.com/jhoicas/smart-inventory/internal/domain/entity"
	"github.com/jhoicas/smart-inventory/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type categoryRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// CategoryRepo implementación de CategoryRepository sobre SQLite.
type CategoryRepo struct {
	q sqlx.ExtContext
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q sqlx.ExtContext) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO categories(id, name, created_at) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE id = ?`, id)
}

// GetByName busca por nombre sin distinguir mayúsculas. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE LOWER(name) = LOWER(?)`, name)
}

// List devuelve todas las categorías por nombre.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT id, name, created_at FROM categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, c := range rows {
		list = append(list, &entity.Category{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return list, nil
}

func (r *CategoryRepo) getOne(ctx context.Context, query, arg string) (*entity.Category, error) {
	var row categoryRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &entity.Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
}
