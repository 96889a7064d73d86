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

type CreateCategoryParams struct {
	Name *string
}

type UpdateCategoryParams struct {
	ID   int64
	Name *string
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error)
	// UpdateCategory returns the number of rows updated; zero is not an error.
	UpdateCategory(ctx context.Context, params UpdateCategoryParams) (int64, error)
	// DeleteCategory succeeds whether or not the category existed.
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	db            db.Transactor
	categoryRepo  repository.CategoryRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewCategoryService(
	db db.Transactor,
	categoryRepo repository.CategoryRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) CategoryService {
	return &categoryService{
		db:            db,
		categoryRepo:  categoryRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list categories: %w", err)
	}

	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Category{}, apperr.CategoryNotFoundErr.WrapParent(err)
		}
		return model.Category{}, fmt.Errorf("category repository get category: %w", err)
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	var category model.Category
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		category, err = s.categoryRepo.
			WithDB(db).
			CreateCategory(ctx, repository.CreateCategoryParams{Name: params.Name})
		if err != nil {
			return fmt.Errorf("category repository create category: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicCategoryCreated, category.ID, event.CategoryEvent{
			CategoryID: category.ID,
			Name:       &category.Name,
		})
	}); err != nil {
		return model.Category{}, fmt.Errorf("db with tx: %w", err)
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, params UpdateCategoryParams) (int64, error) {
	var affected int64
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		affected, err = s.categoryRepo.
			WithDB(db).
			UpdateCategory(ctx, repository.UpdateCategoryParams{ID: params.ID, Name: params.Name})
		if err != nil {
			return fmt.Errorf("category repository update category: %w", err)
		}

		if affected == 0 {
			return nil
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicCategoryUpdated, params.ID, event.CategoryEvent{
			CategoryID: params.ID,
			Name:       params.Name,
		})
	}); err != nil {
		return 0, fmt.Errorf("db with tx: %w", err)
	}

	return affected, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		affected, err := s.categoryRepo.WithDB(db).DeleteCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("category repository delete category: %w", err)
		}

		if affected == 0 {
			return nil
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicCategoryDeleted, id, event.CategoryEvent{CategoryID: id})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}
