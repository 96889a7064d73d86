package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type ProductRepository struct {
	s *Store
}

func (r *ProductRepository) WithDB(db.DB) repository.ProductRepository { return r }

func (r *ProductRepository) ListProducts(context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return nil, err
	}

	products := sortedByID(r.s.products, func(p model.Product) int64 { return p.ID })
	for i := range products {
		products[i] = r.s.withAssociations(products[i])
	}
	return products, nil
}

func (r *ProductRepository) GetProduct(_ context.Context, id int64) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return model.Product{}, err
	}

	product, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return r.s.withAssociations(product), nil
}

func (r *ProductRepository) CreateProduct(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return model.Product{}, err
	}

	if err := r.s.checkCategory(params.CategoryID); err != nil {
		return model.Product{}, err
	}

	product := model.Product{
		ID:            r.s.nextID(),
		Name:          params.Name,
		Price:         params.Price,
		StockQuantity: params.StockQuantity,
		CategoryID:    params.CategoryID,
	}
	r.s.products[product.ID] = product
	return product, nil
}

func (r *ProductRepository) UpdateProduct(_ context.Context, params repository.UpdateProductParams) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	product, ok := r.s.products[params.ID]
	if !ok {
		return 0, nil
	}
	if params.Empty() {
		return 0, nil
	}
	if params.ClearCategory {
		params.CategoryID = nil
	}
	if err := r.s.checkCategory(params.CategoryID); err != nil {
		return 0, err
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Price != nil {
		product.Price = *params.Price
	}
	if params.StockQuantity != nil {
		product.StockQuantity = *params.StockQuantity
	}
	switch {
	case params.ClearCategory:
		product.CategoryID = nil
	case params.CategoryID != nil:
		product.CategoryID = params.CategoryID
	}
	r.s.products[params.ID] = product
	return 1, nil
}

func (r *ProductRepository) DeleteProduct(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	if _, ok := r.s.products[id]; !ok {
		return 0, nil
	}
	for _, pt := range r.s.productTags {
		if pt.ProductID == id {
			return 0, foreignKeyViolation("product_tags", "product_tags_product_id_fkey")
		}
	}
	delete(r.s.products, id)
	return 1, nil
}

// checkCategory must be called with the store locked.
func (s *Store) checkCategory(categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, ok := s.categories[*categoryID]; !ok {
		return foreignKeyViolation("products", "products_category_id_fkey")
	}
	return nil
}

// withAssociations must be called with the store locked.
func (s *Store) withAssociations(p model.Product) model.Product {
	p = plainProduct(p)
	if p.CategoryID != nil {
		if c, ok := s.categories[*p.CategoryID]; ok {
			p.Category = &model.Category{ID: c.ID, Name: c.Name}
		}
	}
	p.Tags = s.tagsOfProduct(p.ID)
	return p
}

// tagsOfProduct must be called with the store locked.
func (s *Store) tagsOfProduct(productID int64) []model.Tag {
	out := []model.Tag{}
	for _, pt := range s.productTags {
		if pt.ProductID != productID {
			continue
		}
		if t, ok := s.tags[pt.TagID]; ok {
			out = append(out, model.Tag{ID: t.ID, Name: t.Name})
		}
	}
	slices.SortFunc(out, func(a, b model.Tag) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
