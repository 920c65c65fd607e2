package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestL(t *testing.T) {
	assert.NotNil(t, L())
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFrom(ctx))

	ctx = WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
}

func TestFromCtx(t *testing.T) {
	t.Run("NoRequestID", func(t *testing.T) {
		assert.Equal(t, L(), FromCtx(context.Background()))
	})

	t.Run("WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-1")
		assert.NotNil(t, FromCtx(ctx))
	})
}
