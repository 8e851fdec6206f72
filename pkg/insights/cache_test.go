package insights

import (
	"testing"
	"time"

	"github.com/shopsight-hq/shopsight/pkg/logger"
	"github.com/shopsight-hq/shopsight/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		cache := NewCache(time.Second)

		report := models.SentimentReport{ProductID: "P-0001", Overall: "positive"}
		cache.Set(logger.Sentiment, "P-0001", report)

		got, found := cacheGet[models.SentimentReport](cache, logger.Sentiment, "P-0001")
		require.True(t, found)
		assert.Equal(t, report, got)

		// Same product under a different feature is a separate entry.
		_, found = cacheGet[models.SentimentReport](cache, logger.Pricing, "P-0001")
		assert.False(t, found)

		_, found = cacheGet[models.SentimentReport](cache, logger.Sentiment, "P-0002")
		assert.False(t, found)
	})

	t.Run("TTL expiration", func(t *testing.T) {
		cache := NewCache(10 * time.Millisecond)

		cache.Set(logger.Forecast, "P-0001", models.DemandForecast{ProductID: "P-0001"})
		_, found := cache.Get(logger.Forecast, "P-0001")
		assert.True(t, found)

		time.Sleep(20 * time.Millisecond)

		_, found = cache.Get(logger.Forecast, "P-0001")
		assert.False(t, found)
	})

	t.Run("clear", func(t *testing.T) {
		cache := NewCache(time.Second)

		cache.Set(logger.Sentiment, "P-0001", models.SentimentReport{})
		cache.Set(logger.Pricing, "P-0001", models.PricingSuggestion{})
		cache.Clear()

		_, found := cache.Get(logger.Sentiment, "P-0001")
		assert.False(t, found)
		_, found = cache.Get(logger.Pricing, "P-0001")
		assert.False(t, found)
	})

	t.Run("mismatched type reads as a miss", func(t *testing.T) {
		cache := NewCache(time.Second)

		cache.Set(logger.Sentiment, "P-0001", "not a report")
		_, found := cacheGet[models.SentimentReport](cache, logger.Sentiment, "P-0001")
		assert.False(t, found)
	})
}
