package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	s := Generate(42, 10, 30)

	t.Run("generates the requested catalog", func(t *testing.T) {
		products := s.Products()
		require.Len(t, products, 10)

		for _, p := range products {
			assert.NotEmpty(t, p.ID)
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.Category)
			assert.Greater(t, p.Price, 0.0)
			assert.GreaterOrEqual(t, p.Rating, 1.0)
			assert.LessOrEqual(t, p.Rating, 5.0)
		}
	})

	t.Run("every product has reviews and sales history", func(t *testing.T) {
		for _, p := range s.Products() {
			reviews := s.Reviews(p.ID)
			assert.NotEmpty(t, reviews)
			for _, r := range reviews {
				assert.Equal(t, p.ID, r.ProductID)
				assert.GreaterOrEqual(t, r.Rating, 1)
				assert.LessOrEqual(t, r.Rating, 5)
				assert.NotEmpty(t, r.Text)
			}

			sales := s.Sales(p.ID)
			require.Len(t, sales, 30)
			for i, rec := range sales {
				assert.GreaterOrEqual(t, rec.Units, 0)
				assert.GreaterOrEqual(t, rec.Revenue, 0.0)
				if i > 0 {
					assert.True(t, rec.Date.After(sales[i-1].Date), "sales must be ordered oldest first")
				}
			}
		}
	})

	t.Run("same seed produces the same dataset", func(t *testing.T) {
		other := Generate(42, 10, 30)
		assert.Equal(t, s.Products(), other.Products())
	})

	t.Run("different seed produces a different dataset", func(t *testing.T) {
		other := Generate(43, 10, 30)
		assert.NotEqual(t, s.Products(), other.Products())
	})

	t.Run("product lookup", func(t *testing.T) {
		p, found := s.Product("P-0001")
		assert.True(t, found)
		assert.Equal(t, "P-0001", p.ID)

		_, found = s.Product("P-9999")
		assert.False(t, found)
	})

	t.Run("counts", func(t *testing.T) {
		products, reviews, sales := s.Counts()
		assert.Equal(t, 10, products)
		assert.Greater(t, reviews, 0)
		assert.Equal(t, 300, sales)
	})
}
