package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

// Service is the event service.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.RegisterHandlers(); err != nil {
		return nil, err
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

// RegisterHandlers subscribes a handler to every catalog topic.
func (s *Service) RegisterHandlers() error {
	handlers := map[string]mq.HandlerFunc{
		TopicCategoryCreated: decode(s.handleCategoryEvent),
		TopicCategoryUpdated: decode(s.handleCategoryEvent),
		TopicCategoryDeleted: decode(s.handleCategoryEvent),
		TopicProductCreated:  decode(s.handleProductEvent),
		TopicProductUpdated:  decode(s.handleProductEvent),
		TopicProductDeleted:  decode(s.handleProductEvent),
		TopicTagCreated:      decode(s.handleTagEvent),
		TopicTagUpdated:      decode(s.handleTagEvent),
		TopicTagDeleted:      decode(s.handleTagEvent),
	}

	for _, topic := range Topics {
		if err := s.mqConsumer.RegisterHandler(topic, handlers[topic]); err != nil {
			return fmt.Errorf("register %s handler: %w", topic, err)
		}
	}

	return nil
}

// decode adapts a typed event handler to an mq.HandlerFunc.
func decode[T any](handle func(ctx context.Context, topic string, ev T) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev T
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := handle(ctx, topic, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}

func (s *Service) handleCategoryEvent(ctx context.Context, topic string, ev CategoryEvent) error {
	s.logger.InfoContext(ctx, "handling category event",
		slog.String("topic", topic),
		slog.Int64("category_id", ev.CategoryID),
		slog.String("name", ptr.Deref(ev.Name, "")),
	)
	return nil
}

func (s *Service) handleProductEvent(ctx context.Context, topic string, ev ProductEvent) error {
	s.logger.InfoContext(ctx, "handling product event",
		slog.String("topic", topic),
		slog.Int64("product_id", ev.ProductID),
		slog.String("name", ptr.Deref(ev.Name, "")),
		slog.Bool("category_cleared", ev.CategoryCleared),
		slog.Any("tag_ids", ev.TagIDs),
	)
	return nil
}

func (s *Service) handleTagEvent(ctx context.Context, topic string, ev TagEvent) error {
	s.logger.InfoContext(ctx, "handling tag event",
		slog.String("topic", topic),
		slog.Int64("tag_id", ev.TagID),
		slog.String("name", ptr.Deref(ev.Name, "")),
	)
	return nil
}
