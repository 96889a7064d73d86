package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type CreateProductParams struct {
	Name          string
	Price         float64
	StockQuantity *int
	CategoryID    *int64
	TagIDs        []int64
}

type CreateProductResult struct {
	Product model.Product
	// ProductTags holds the join rows created for the requested tags; empty
	// when no tags were requested.
	ProductTags []model.ProductTag
}

type UpdateProductParams struct {
	ID            int64
	Name          *string
	Price         *float64
	StockQuantity *int
	CategoryID    *int64
	// ClearCategory removes the product from its category.
	ClearCategory bool
	// TagIDs, when non-empty, is the complete tag set the product should end
	// up with. Nil or empty leaves the tags alone.
	TagIDs []int64
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (CreateProductResult, error)
	// UpdateProduct returns the number of product rows updated. Tag
	// reconciliation runs in the background and is not reflected in the
	// result; use Wait to block until it has finished.
	UpdateProduct(ctx context.Context, params UpdateProductParams) (int64, error)
	// DeleteProduct removes the product's join rows, then the product. The
	// two steps are not atomic.
	DeleteProduct(ctx context.Context, id int64) error
	// Wait blocks until every background tag reconciliation has returned.
	Wait()
}

type productService struct {
	logger         *slog.Logger
	db             db.Transactor
	productRepo    repository.ProductRepository
	productTagRepo repository.ProductTagRepository
	outboxMsgRepo  repository.OutboxMsgRepository

	reconciling sync.WaitGroup
}

func NewProductService(
	logger *slog.Logger,
	db db.Transactor,
	productRepo repository.ProductRepository,
	productTagRepo repository.ProductTagRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		logger:         logger.With(slog.String("service", "product")),
		db:             db,
		productRepo:    productRepo,
		productTagRepo: productTagRepo,
		outboxMsgRepo:  outboxMsgRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
		}
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (CreateProductResult, error) {
	stock := model.DefaultStockQuantity
	if params.StockQuantity != nil {
		stock = *params.StockQuantity
	}
	tagIDs := dedupeTagIDs(params.TagIDs)

	var result CreateProductResult
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		product, err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, repository.CreateProductParams{
				Name:          params.Name,
				Price:         params.Price,
				StockQuantity: stock,
				CategoryID:    params.CategoryID,
			})
		if err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}
		result.Product = product

		if len(tagIDs) > 0 {
			result.ProductTags, err = s.productTagRepo.
				WithDB(db).
				BulkCreateProductTags(ctx, product.ID, tagIDs)
			if err != nil {
				return fmt.Errorf("product tag repository bulk create product tags: %w", err)
			}
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductCreated, product.ID, event.ProductEvent{
			ProductID:     product.ID,
			Name:          &product.Name,
			Price:         &product.Price,
			StockQuantity: &product.StockQuantity,
			CategoryID:    product.CategoryID,
			TagIDs:        tagIDs,
		})
	}); err != nil {
		return CreateProductResult{}, fmt.Errorf("db with tx: %w", err)
	}

	return result, nil
}

func (s *productService) UpdateProduct(ctx context.Context, params UpdateProductParams) (int64, error) {
	var affected int64
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		affected, err = s.productRepo.
			WithDB(db).
			UpdateProduct(ctx, repository.UpdateProductParams{
				ID:            params.ID,
				Name:          params.Name,
				Price:         params.Price,
				StockQuantity: params.StockQuantity,
				CategoryID:    params.CategoryID,
				ClearCategory: params.ClearCategory,
			})
		if err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		if affected == 0 {
			return nil
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductUpdated, params.ID, event.ProductEvent{
			ProductID:       params.ID,
			Name:            params.Name,
			Price:           params.Price,
			StockQuantity:   params.StockQuantity,
			CategoryID:      params.CategoryID,
			CategoryCleared: params.ClearCategory,
			TagIDs:          dedupeTagIDs(params.TagIDs),
		})
	}); err != nil {
		return 0, fmt.Errorf("db with tx: %w", err)
	}

	if len(params.TagIDs) > 0 {
		s.startReconciliation(ctx, params.ID, slices.Clone(params.TagIDs))
	}

	return affected, nil
}

// startReconciliation runs reconcileProductTags detached from the caller: it
// outlives request cancellation and its outcome is only logged.
func (s *productService) startReconciliation(ctx context.Context, productID int64, tagIDs []int64) {
	ctx = log.WithAttrs(context.WithoutCancel(ctx), slog.Int64("product_id", productID))

	s.reconciling.Go(func() {
		if err := s.reconcileProductTags(ctx, productID, tagIDs); err != nil {
			s.logger.ErrorContext(ctx, "error reconciling product tags",
				slog.Any("tag_ids", tagIDs),
				slog.Any("error", err),
			)
			return
		}

		s.logger.DebugContext(ctx, "product tags reconciled", slog.Any("tag_ids", tagIDs))
	})
}

func (s *productService) Wait() {
	s.reconciling.Wait()
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.productTagRepo.DeleteProductTagsByProductID(ctx, id); err != nil {
		return fmt.Errorf("product tag repository delete product tags by product id: %w", err)
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		affected, err := s.productRepo.WithDB(db).DeleteProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository delete product: %w", err)
		}

		if affected == 0 {
			return nil
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductDeleted, id, event.ProductEvent{ProductID: id})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}
