package aiqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestDo(t *testing.T) {
	q := newTestQueue(3, time.Millisecond, 0)

	t.Run("returns the result on success", func(t *testing.T) {
		v, ok := Do(context.Background(), q, logger.Sentiment, func(ctx context.Context) (string, error) {
			return "looking good", nil
		})
		assert.True(t, ok)
		assert.Equal(t, "looking good", v)
	})

	t.Run("returns the zero value on failure", func(t *testing.T) {
		v, ok := Do(context.Background(), q, logger.Sentiment, func(ctx context.Context) (int, error) {
			return 42, errors.New("malformed response")
		})
		assert.False(t, ok)
		assert.Zero(t, v)
	})
}
