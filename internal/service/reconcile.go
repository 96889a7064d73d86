package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

// diffProductTags compares the current join rows of a product with the
// desired tag ids. It returns the tag ids to insert, in the order first
// requested and without duplicates, and the ids of the join rows to delete.
// Rows whose tag stays desired appear in neither list.
func diffProductTags(existing []model.ProductTag, desired []int64) (additions []int64, removals []int64) {
	current := make(map[int64]struct{}, len(existing))
	for _, pt := range existing {
		current[pt.TagID] = struct{}{}
	}

	wanted := make(map[int64]struct{}, len(desired))
	for _, tagID := range desired {
		if _, dup := wanted[tagID]; dup {
			continue
		}
		wanted[tagID] = struct{}{}

		if _, ok := current[tagID]; !ok {
			additions = append(additions, tagID)
		}
	}

	for _, pt := range existing {
		if _, ok := wanted[pt.TagID]; !ok {
			removals = append(removals, pt.ID)
		}
	}

	return additions, removals
}

// dedupeTagIDs drops repeated ids, keeping first occurrences in order.
func dedupeTagIDs(tagIDs []int64) []int64 {
	additions, _ := diffProductTags(nil, tagIDs)
	return additions
}

// reconcileProductTags makes the product's tag set exactly tagIDs. The
// inserts and deletes are issued concurrently and independently: one failing
// does not cancel the other.
func (s *productService) reconcileProductTags(ctx context.Context, productID int64, tagIDs []int64) error {
	existing, err := s.productTagRepo.ListProductTagsByProductID(ctx, productID)
	if err != nil {
		return fmt.Errorf("product tag repository list product tags: %w", err)
	}

	additions, removals := diffProductTags(existing, tagIDs)

	var g errgroup.Group
	g.Go(func() error {
		if _, err := s.productTagRepo.DeleteProductTags(ctx, removals); err != nil {
			return fmt.Errorf("product tag repository delete product tags: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := s.productTagRepo.BulkCreateProductTags(ctx, productID, additions); err != nil {
			return fmt.Errorf("product tag repository bulk create product tags: %w", err)
		}
		return nil
	})

	return g.Wait()
}
