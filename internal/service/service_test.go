package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository/memory"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

type fixture struct {
	store       *memory.Store
	categorySvc service.CategoryService
	productSvc  service.ProductService
	tagSvc      service.TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	repos := store.Repositories()

	productSvc := service.NewProductService(log.Discard(), store, repos.Products, repos.ProductTags, repos.OutboxMsgs)
	t.Cleanup(productSvc.Wait)

	return &fixture{
		store:       store,
		categorySvc: service.NewCategoryService(store, repos.Categories, repos.OutboxMsgs),
		productSvc:  productSvc,
		tagSvc:      service.NewTagService(store, repos.Tags, repos.ProductTags, repos.OutboxMsgs),
	}
}

func (f *fixture) createTags(t *testing.T, names ...string) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		tag, err := f.tagSvc.CreateTag(context.Background(), service.CreateTagParams{Name: ptr.New(name)})
		require.NoError(t, err)
		ids = append(ids, tag.ID)
	}
	return ids
}

func (f *fixture) topics() []string {
	msgs := f.store.OutboxMsgs()
	topics := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		topics = append(topics, msg.Topic)
	}
	return topics
}

func decodePayload[T any](t *testing.T, payload []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(payload, &v))
	return v
}
