package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

func TestDiffProductTags(t *testing.T) {
	existing := []model.ProductTag{
		{ID: 10, ProductID: 1, TagID: 1},
		{ID: 11, ProductID: 1, TagID: 2},
		{ID: 12, ProductID: 1, TagID: 3},
	}

	tests := []struct {
		name          string
		existing      []model.ProductTag
		desired       []int64
		wantAdditions []int64
		wantRemovals  []int64
	}{
		{
			name:          "swap one tag",
			existing:      existing,
			desired:       []int64{2, 3, 4},
			wantAdditions: []int64{4},
			wantRemovals:  []int64{10},
		},
		{
			name:     "same set in another order",
			existing: existing,
			desired:  []int64{3, 1, 2},
		},
		{
			name:          "no existing rows",
			desired:       []int64{5, 6},
			wantAdditions: []int64{5, 6},
		},
		{
			name:          "duplicates are collapsed",
			existing:      existing[:1],
			desired:       []int64{7, 1, 7, 7},
			wantAdditions: []int64{7},
		},
		{
			name:          "replace everything",
			existing:      existing,
			desired:       []int64{9},
			wantAdditions: []int64{9},
			wantRemovals:  []int64{10, 11, 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			additions, removals := diffProductTags(tt.existing, tt.desired)
			assert.Equal(t, tt.wantAdditions, additions)
			assert.Equal(t, tt.wantRemovals, removals)
		})
	}
}

func TestDedupeTagIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupeTagIDs([]int64{3, 1, 3, 2, 1}))
	assert.Nil(t, dedupeTagIDs(nil))
}
