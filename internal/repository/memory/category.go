package memory

import (
	"context"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) WithDB(db.DB) repository.CategoryRepository { return r }

func (r *CategoryRepository) ListCategories(context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return nil, err
	}

	categories := sortedByID(r.s.categories, func(c model.Category) int64 { return c.ID })
	for i := range categories {
		categories[i].Products = r.s.productsOfCategory(categories[i].ID)
	}
	return categories, nil
}

func (r *CategoryRepository) GetCategory(_ context.Context, id int64) (model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return model.Category{}, err
	}

	category, ok := r.s.categories[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	category.Products = r.s.productsOfCategory(id)
	return category, nil
}

func (r *CategoryRepository) CreateCategory(_ context.Context, params repository.CreateCategoryParams) (model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return model.Category{}, err
	}

	if params.Name == nil {
		return model.Category{}, notNullViolation("categories", "name")
	}

	category := model.Category{ID: r.s.nextID(), Name: *params.Name}
	r.s.categories[category.ID] = category
	return category, nil
}

func (r *CategoryRepository) UpdateCategory(_ context.Context, params repository.UpdateCategoryParams) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	category, ok := r.s.categories[params.ID]
	if !ok || params.Name == nil {
		return 0, nil
	}
	category.Name = *params.Name
	r.s.categories[params.ID] = category
	return 1, nil
}

func (r *CategoryRepository) DeleteCategory(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	if _, ok := r.s.categories[id]; !ok {
		return 0, nil
	}
	delete(r.s.categories, id)

	// ON DELETE SET NULL
	for pid, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.s.products[pid] = p
		}
	}
	return 1, nil
}

// productsOfCategory must be called with the store locked.
func (s *Store) productsOfCategory(categoryID int64) []model.Product {
	out := []model.Product{}
	for _, p := range sortedByID(s.products, func(p model.Product) int64 { return p.ID }) {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, plainProduct(p))
		}
	}
	return out
}
