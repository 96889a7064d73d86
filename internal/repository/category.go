package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CreateCategoryParams struct {
	Name *string
}

type UpdateCategoryParams struct {
	ID   int64
	Name *string
}

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	// ListCategories returns every category with its products attached.
	ListCategories(ctx context.Context) ([]model.Category, error)
	// GetCategory returns the category with its products, or ErrNotFound.
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error)
	// UpdateCategory returns the number of rows affected, which is 0 when
	// there is nothing to set.
	UpdateCategory(ctx context.Context, params UpdateCategoryParams) (int64, error)
	// DeleteCategory returns the number of rows affected.
	DeleteCategory(ctx context.Context, id int64) (int64, error)
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

type categoryRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (row categoryRow) toModel() model.Category {
	return model.Category{ID: row.ID, Name: row.Name}
}

func (r categoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categoryRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}

	ids := make([]int64, 0, len(categoryRows))
	for _, row := range categoryRows {
		ids = append(ids, row.ID)
	}

	products, err := listProductsByCategoryIDs(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(categoryRows))
	for _, row := range categoryRows {
		category := row.toModel()
		category.Products = products[row.ID]
		categories = append(categories, category)
	}

	return categories, nil
}

func (r categoryRepository) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories WHERE id = $1`, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("query category: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("collect category: %w", err)
	}

	products, err := listProductsByCategoryIDs(ctx, r.db, []int64{id})
	if err != nil {
		return model.Category{}, err
	}

	category := row.toModel()
	category.Products = products[id]

	return category, nil
}

func (r categoryRepository) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO categories (name)
		VALUES (@name)
		RETURNING id, name
	`, pgx.NamedArgs{"name": params.Name})
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return row.toModel(), nil
}

func (r categoryRepository) UpdateCategory(ctx context.Context, params UpdateCategoryParams) (int64, error) {
	if params.Name == nil {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name = @name
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":   params.ID,
		"name": params.Name,
	})
	if err != nil {
		return 0, fmt.Errorf("update category: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r categoryRepository) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}

	return tag.RowsAffected(), nil
}
