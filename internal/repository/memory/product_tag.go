package memory

import (
	"context"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type ProductTagRepository struct {
	s *Store
}

func (r *ProductTagRepository) WithDB(db.DB) repository.ProductTagRepository { return r }

func (r *ProductTagRepository) ListProductTagsByProductID(_ context.Context, productID int64) ([]model.ProductTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return nil, err
	}

	out := []model.ProductTag{}
	for _, pt := range sortedByID(r.s.productTags, func(pt model.ProductTag) int64 { return pt.ID }) {
		if pt.ProductID == productID {
			out = append(out, pt)
		}
	}
	return out, nil
}

func (r *ProductTagRepository) BulkCreateProductTags(_ context.Context, productID int64, tagIDs []int64) ([]model.ProductTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return nil, err
	}

	// Validate the whole batch first: a failing INSERT writes nothing.
	if _, ok := r.s.products[productID]; !ok {
		return nil, foreignKeyViolation("product_tags", "product_tags_product_id_fkey")
	}
	seen := make(map[int64]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := r.s.tags[tagID]; !ok {
			return nil, foreignKeyViolation("product_tags", "product_tags_tag_id_fkey")
		}
		if _, dup := seen[tagID]; dup {
			return nil, uniqueViolation("product_tags", "product_tags_product_id_tag_id_key")
		}
		seen[tagID] = struct{}{}
		for _, pt := range r.s.productTags {
			if pt.ProductID == productID && pt.TagID == tagID {
				return nil, uniqueViolation("product_tags", "product_tags_product_id_tag_id_key")
			}
		}
	}

	created := make([]model.ProductTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		pt := model.ProductTag{ID: r.s.nextID(), ProductID: productID, TagID: tagID}
		r.s.productTags[pt.ID] = pt
		created = append(created, pt)
	}
	return created, nil
}

func (r *ProductTagRepository) DeleteProductTags(_ context.Context, ids []int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	var n int64
	for _, id := range ids {
		if _, ok := r.s.productTags[id]; ok {
			delete(r.s.productTags, id)
			n++
		}
	}
	return n, nil
}

func (r *ProductTagRepository) DeleteProductTagsByProductID(_ context.Context, productID int64) (int64, error) {
	return r.deleteWhere(func(pt model.ProductTag) bool { return pt.ProductID == productID })
}

func (r *ProductTagRepository) DeleteProductTagsByTagID(_ context.Context, tagID int64) (int64, error) {
	return r.deleteWhere(func(pt model.ProductTag) bool { return pt.TagID == tagID })
}

func (r *ProductTagRepository) deleteWhere(match func(model.ProductTag) bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return 0, err
	}

	var n int64
	for id, pt := range r.s.productTags {
		if match(pt) {
			delete(r.s.productTags, id)
			n++
		}
	}
	return n, nil
}
