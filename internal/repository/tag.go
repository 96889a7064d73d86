package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CreateTagParams struct {
	Name *string
}

type UpdateTagParams struct {
	ID   int64
	Name *string
}

type TagRepository interface {
	WithDB(db db.DB) TagRepository
	// ListTags returns every tag with its products attached.
	ListTags(ctx context.Context) ([]model.Tag, error)
	// GetTag returns the tag with its products, or ErrNotFound.
	GetTag(ctx context.Context, id int64) (model.Tag, error)
	CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error)
	UpdateTag(ctx context.Context, params UpdateTagParams) (int64, error)
	DeleteTag(ctx context.Context, id int64) (int64, error)
}

type tagRepository struct {
	db db.DB
}

func NewTagRepository(db db.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r tagRepository) WithDB(db db.DB) TagRepository {
	return &tagRepository{db: db}
}

type tagRow struct {
	ID   int64   `db:"id"`
	Name *string `db:"name"`
}

func (row tagRow) toModel() model.Tag {
	tag := model.Tag{ID: row.ID}
	if row.Name != nil {
		tag.Name = *row.Name
	}
	return tag
}

func (r tagRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	tagRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		return nil, fmt.Errorf("collect tags: %w", err)
	}

	ids := make([]int64, 0, len(tagRows))
	for _, row := range tagRows {
		ids = append(ids, row.ID)
	}

	products, err := listProductsByTagIDs(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	tags := make([]model.Tag, 0, len(tagRows))
	for _, row := range tagRows {
		tag := row.toModel()
		tag.Products = products[row.ID]
		tags = append(tags, tag)
	}

	return tags, nil
}

func (r tagRepository) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tags WHERE id = $1`, id)
	if err != nil {
		return model.Tag{}, fmt.Errorf("query tag: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.Tag{}, ErrNotFound
		}
		return model.Tag{}, fmt.Errorf("collect tag: %w", err)
	}

	products, err := listProductsByTagIDs(ctx, r.db, []int64{id})
	if err != nil {
		return model.Tag{}, err
	}

	tag := row.toModel()
	tag.Products = products[id]

	return tag, nil
}

func (r tagRepository) CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO tags (name)
		VALUES (@name)
		RETURNING id, name
	`, pgx.NamedArgs{"name": params.Name})
	if err != nil {
		return model.Tag{}, fmt.Errorf("insert tag: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		return model.Tag{}, fmt.Errorf("insert tag: %w", err)
	}

	return row.toModel(), nil
}

func (r tagRepository) UpdateTag(ctx context.Context, params UpdateTagParams) (int64, error) {
	if params.Name == nil {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE tags
		SET name = @name
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":   params.ID,
		"name": params.Name,
	})
	if err != nil {
		return 0, fmt.Errorf("update tag: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r tagRepository) DeleteTag(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete tag: %w", err)
	}

	return tag.RowsAffected(), nil
}

// listTagsByProductIDs returns plain tags grouped by the product carrying them.
func listTagsByProductIDs(ctx context.Context, q db.DB, productIDs []int64) (map[int64][]model.Tag, error) {
	grouped := make(map[int64][]model.Tag, len(productIDs))
	for _, id := range productIDs {
		grouped[id] = []model.Tag{}
	}
	if len(productIDs) == 0 {
		return grouped, nil
	}

	rows, err := q.Query(ctx, `
		SELECT pt.product_id, t.id, t.name
		FROM product_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id = ANY($1)
		ORDER BY t.id
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("query tags by product: %w", err)
	}

	type productTagRow struct {
		ProductID int64 `db:"product_id"`
		tagRow
	}

	tagRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productTagRow])
	if err != nil {
		return nil, fmt.Errorf("collect tags by product: %w", err)
	}

	for _, row := range tagRows {
		grouped[row.ProductID] = append(grouped[row.ProductID], row.toModel())
	}

	return grouped, nil
}
