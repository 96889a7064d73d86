package outbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-catalog/pkg/outbox"
)

func TestHeaders(t *testing.T) {
	t.Run("Should carry correlation id through a record", func(t *testing.T) {
		ctx := correlationid.NewContext(context.Background(), "abc-123")

		headers := outbox.BuildHeaders(ctx)
		assert.Equal(t, "abc-123", headers[correlationid.Header])

		rec := &kgo.Record{}
		for k, v := range headers {
			rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
		}

		got, ok := correlationid.FromContext(outbox.ExtractContextFromRecord(context.Background(), rec))
		assert.True(t, ok)
		assert.Equal(t, "abc-123", got)
	})

	t.Run("Should build empty headers without correlation id", func(t *testing.T) {
		headers := outbox.BuildHeaders(context.Background())
		_, ok := headers[correlationid.Header]
		assert.False(t, ok)
	})
}
