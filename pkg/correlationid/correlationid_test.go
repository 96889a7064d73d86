package correlationid_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

func TestCorrelationID(t *testing.T) {
	t.Run("Should be absent on empty context", func(t *testing.T) {
		_, ok := correlationid.FromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("Should round trip through context", func(t *testing.T) {
		id := correlationid.New()
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		got, ok := correlationid.FromContext(correlationid.NewContext(context.Background(), id))
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("Should treat empty id as absent", func(t *testing.T) {
		_, ok := correlationid.FromContext(correlationid.NewContext(context.Background(), ""))
		assert.False(t, ok)
	})
}
