package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CreateTagParams struct {
	Name *string
}

type UpdateTagParams struct {
	ID   int64
	Name *string
}

type TagService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id int64) (model.Tag, error)
	CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error)
	UpdateTag(ctx context.Context, params UpdateTagParams) (int64, error)
	// DeleteTag removes the tag's join rows, then the tag. The two steps are
	// not atomic.
	DeleteTag(ctx context.Context, id int64) error
}

type tagService struct {
	db             db.Transactor
	tagRepo        repository.TagRepository
	productTagRepo repository.ProductTagRepository
	outboxMsgRepo  repository.OutboxMsgRepository
}

func NewTagService(
	db db.Transactor,
	tagRepo repository.TagRepository,
	productTagRepo repository.ProductTagRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) TagService {
	return &tagService{
		db:             db,
		tagRepo:        tagRepo,
		productTagRepo: productTagRepo,
		outboxMsgRepo:  outboxMsgRepo,
	}
}

func (s *tagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("tag repository list tags: %w", err)
	}

	return tags, nil
}

func (s *tagService) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	tag, err := s.tagRepo.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Tag{}, apperr.TagNotFoundErr.WrapParent(err)
		}
		return model.Tag{}, fmt.Errorf("tag repository get tag: %w", err)
	}

	return tag, nil
}

func (s *tagService) CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error) {
	var tag model.Tag
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		tag, err = s.tagRepo.WithDB(db).CreateTag(ctx, repository.CreateTagParams{Name: params.Name})
		if err != nil {
			return fmt.Errorf("tag repository create tag: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicTagCreated, tag.ID, event.TagEvent{
			TagID: tag.ID,
			Name:  params.Name,
		})
	}); err != nil {
		return model.Tag{}, fmt.Errorf("db with tx: %w", err)
	}

	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, params UpdateTagParams) (int64, error) {
	var affected int64
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		affected, err = s.tagRepo.WithDB(db).UpdateTag(ctx, repository.UpdateTagParams{ID: params.ID, Name: params.Name})
		if err != nil {
			return fmt.Errorf("tag repository update tag: %w", err)
		}

		if affected == 0 {
			return nil
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicTagUpdated, params.ID, event.TagEvent{
			TagID: params.ID,
			Name:  params.Name,
		})
	}); err != nil {
		return 0, fmt.Errorf("db with tx: %w", err)
	}

	return affected, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.productTagRepo.DeleteProductTagsByTagID(ctx, id); err != nil {
		return fmt.Errorf("product tag repository delete product tags by tag id: %w", err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		affected, err := s.tagRepo.WithDB(db).DeleteTag(ctx, id)
		if err != nil {
			return fmt.Errorf("tag repository delete tag: %w", err)
		}

		if affected == 0 {
			return nil
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicTagDeleted, id, event.TagEvent{TagID: id})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}
