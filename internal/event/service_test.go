package event_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = map[string]mq.HandlerFunc{}
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(context.Context) (mq.CleanupFunc, error) {
	return func() {}, nil
}

func TestService(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo})

	consumer := &fakeConsumer{}
	svc := event.New(logger, consumer)

	cleanup, err := svc.Run(context.Background())
	require.NoError(t, err)
	defer cleanup()

	t.Run("Should register every catalog topic", func(t *testing.T) {
		for _, topic := range event.Topics {
			assert.Contains(t, consumer.handlers, topic)
		}
	})

	t.Run("Should decode and log product events", func(t *testing.T) {
		err := consumer.handlers[event.TopicProductCreated](context.Background(), event.TopicProductCreated,
			[]byte(`{"product_id":3,"name":"Plain T-Shirt","tag_ids":[1,2]}`))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "handling product event")
		assert.Contains(t, buf.String(), event.TopicProductCreated)
	})

	t.Run("Should fail on malformed payload", func(t *testing.T) {
		err := consumer.handlers[event.TopicTagDeleted](context.Background(), event.TopicTagDeleted, []byte(`{`))
		assert.ErrorContains(t, err, "unmarshal catalog.tag.deleted event")
	})
}
