package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type TagRepository struct {
	s *Store
}

func (r *TagRepository) WithDB(db.DB) repository.TagRepository { return r }

func (r *TagRepository) ListTags(context.Context) ([]model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return nil, err
	}

	tags := sortedByID(r.s.tags, func(t model.Tag) int64 { return t.ID })
	for i := range tags {
		tags[i].Products = r.s.productsOfTag(tags[i].ID)
	}
	return tags, nil
}

func (r *TagRepository) GetTag(_ context.Context, id int64) (model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return model.Tag{}, err
	}

	tag, ok := r.s.tags[id]
	if !ok {
		return model.Tag{}, repository.ErrNotFound
	}
	tag.Products = r.s.productsOfTag(id)
	return tag, nil
}

func (r *TagRepository) CreateTag(_ context.Context, params repository.CreateTagParams) (model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return model.Tag{}, err
	}

	tag := model.Tag{ID: r.s.nextID()}
	if params.Name != nil {
		tag.Name = *params.Name
	}
	r.s.tags[tag.ID] = tag
	return tag, nil
}

func (r *TagRepository) UpdateTag(_ context.Context, params repository.UpdateTagParams) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	tag, ok := r.s.tags[params.ID]
	if !ok || params.Name == nil {
		return 0, nil
	}
	tag.Name = *params.Name
	r.s.tags[params.ID] = tag
	return 1, nil
}

func (r *TagRepository) DeleteTag(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	if _, ok := r.s.tags[id]; !ok {
		return 0, nil
	}
	for _, pt := range r.s.productTags {
		if pt.TagID == id {
			return 0, foreignKeyViolation("product_tags", "product_tags_tag_id_fkey")
		}
	}
	delete(r.s.tags, id)
	return 1, nil
}

// productsOfTag must be called with the store locked.
func (s *Store) productsOfTag(tagID int64) []model.Product {
	out := []model.Product{}
	for _, pt := range sortedByID(s.productTags, func(pt model.ProductTag) int64 { return pt.ID }) {
		if pt.TagID != tagID {
			continue
		}
		if p, ok := s.products[pt.ProductID]; ok {
			out = append(out, plainProduct(p))
		}
	}
	slices.SortFunc(out, func(a, b model.Product) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
