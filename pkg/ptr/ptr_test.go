package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

func TestDeref(t *testing.T) {
	assert.Equal(t, "shirts", ptr.Deref(ptr.New("shirts"), "-"))
	assert.Equal(t, "-", ptr.Deref[string](nil, "-"))
	assert.Equal(t, 0, ptr.Deref(ptr.New(0), 10))
}
