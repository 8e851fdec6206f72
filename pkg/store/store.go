// Package store generates and serves the simulated e-commerce dataset.
package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopsight-hq/shopsight/pkg/models"
)

var categories = []string{"Electronics", "Home", "Apparel", "Sports", "Beauty", "Toys"}

var adjectives = []string{"Classic", "Pro", "Ultra", "Compact", "Deluxe", "Eco", "Smart", "Premium"}

var nouns = map[string][]string{
	"Electronics": {"Headphones", "Speaker", "Webcam", "Keyboard", "Charger", "Monitor"},
	"Home":        {"Blender", "Lamp", "Kettle", "Vacuum", "Diffuser", "Toaster"},
	"Apparel":     {"Hoodie", "Sneakers", "Jacket", "Backpack", "Cap", "Scarf"},
	"Sports":      {"Yoga Mat", "Dumbbell Set", "Water Bottle", "Resistance Bands", "Jump Rope", "Foam Roller"},
	"Beauty":      {"Face Serum", "Hair Dryer", "Moisturizer", "Trimmer", "Mirror", "Brush Set"},
	"Toys":        {"Building Blocks", "Puzzle", "RC Car", "Plush Bear", "Board Game", "Drone"},
}

var positivePhrases = []string{
	"Exceeded my expectations, worth every penny.",
	"Great build quality and fast shipping.",
	"Works exactly as described, very happy with it.",
	"Bought a second one as a gift, highly recommend.",
	"Solid product, has held up well after daily use.",
}

var neutralPhrases = []string{
	"Does the job, nothing special.",
	"Decent for the price, though packaging was flimsy.",
	"Okay product but the manual is confusing.",
	"Average quality, delivery took longer than expected.",
}

var negativePhrases = []string{
	"Stopped working after two weeks, very disappointed.",
	"Cheaply made, not as pictured on the site.",
	"Customer support never answered my return request.",
	"Arrived damaged and the replacement was also defective.",
}

var reviewerNames = []string{
	"Alex P.", "Jordan M.", "Sam K.", "Taylor R.", "Casey L.",
	"Morgan D.", "Riley S.", "Jamie W.", "Drew H.", "Quinn B.",
}

// Store holds the generated dataset in memory. All fields are written once
// during Generate and only read afterwards, so access needs no locking.
type Store struct {
	products []models.Product
	reviews  map[string][]models.Review
	sales    map[string][]models.SalesRecord
}

// Generate builds a deterministic dataset from the given seed: productCount
// products, a handful of reviews each, and salesDays days of history.
func Generate(seed int64, productCount, salesDays int) *Store {
	rng := rand.New(rand.NewSource(seed))
	s := &Store{
		reviews: make(map[string][]models.Review),
		sales:   make(map[string][]models.SalesRecord),
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < productCount; i++ {
		category := categories[rng.Intn(len(categories))]
		names := nouns[category]
		p := models.Product{
			ID:       fmt.Sprintf("P-%04d", i+1),
			Name:     adjectives[rng.Intn(len(adjectives))] + " " + names[rng.Intn(len(names))],
			Category: category,
			Price:    float64(rng.Intn(19000)+999) / 100,
			Stock:    rng.Intn(500),
		}

		reviews := s.generateReviews(rng, p.ID, now)
		p.Rating = averageRating(reviews)
		s.reviews[p.ID] = reviews
		s.sales[p.ID] = s.generateSales(rng, p, now, salesDays)
		s.products = append(s.products, p)
	}
	return s
}

func (s *Store) generateReviews(rng *rand.Rand, productID string, now time.Time) []models.Review {
	count := rng.Intn(8) + 3
	reviews := make([]models.Review, 0, count)
	for i := 0; i < count; i++ {
		// Skew toward positive ratings the way real marketplaces do.
		rating := 1 + rng.Intn(5)
		if rng.Float64() < 0.5 {
			rating = 4 + rng.Intn(2)
		}

		var text string
		switch {
		case rating >= 4:
			text = positivePhrases[rng.Intn(len(positivePhrases))]
		case rating == 3:
			text = neutralPhrases[rng.Intn(len(neutralPhrases))]
		default:
			text = negativePhrases[rng.Intn(len(negativePhrases))]
		}

		reviews = append(reviews, models.Review{
			ID:        fmt.Sprintf("%s-R%02d", productID, i+1),
			ProductID: productID,
			Author:    reviewerNames[rng.Intn(len(reviewerNames))],
			Rating:    rating,
			Text:      text,
			CreatedAt: now.AddDate(0, 0, -rng.Intn(120)),
		})
	}
	return reviews
}

func (s *Store) generateSales(rng *rand.Rand, p models.Product, now time.Time, days int) []models.SalesRecord {
	base := rng.Intn(20) + 5
	trend := rng.Float64()*0.4 - 0.1 // between -0.1 and +0.3 units per day
	records := make([]models.SalesRecord, 0, days)
	for d := days; d > 0; d-- {
		date := now.AddDate(0, 0, -d)

		units := float64(base) + trend*float64(days-d)
		// Weekend lift plus noise.
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			units *= 1.4
		}
		units += rng.Float64()*6 - 3
		if units < 0 {
			units = 0
		}

		records = append(records, models.SalesRecord{
			ProductID: p.ID,
			Date:      date,
			Units:     int(units),
			Revenue:   float64(int(units)) * p.Price,
		})
	}
	return records
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// Products returns the full catalog.
func (s *Store) Products() []models.Product {
	return s.products
}

// Product returns the product with the given ID.
func (s *Store) Product(id string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Reviews returns the reviews for a product.
func (s *Store) Reviews(productID string) []models.Review {
	return s.reviews[productID]
}

// Sales returns the sales history for a product, oldest first.
func (s *Store) Sales(productID string) []models.SalesRecord {
	return s.sales[productID]
}

// Counts returns dataset totals for the status endpoint.
func (s *Store) Counts() (products, reviews, sales int) {
	products = len(s.products)
	for _, r := range s.reviews {
		reviews += len(r)
	}
	for _, rec := range s.sales {
		sales += len(rec)
	}
	return products, reviews, sales
}
