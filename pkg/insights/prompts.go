package insights

import (
	"fmt"
	"strings"

	"github.com/shopsight-hq/shopsight/pkg/models"
)

// Prompt builders. Each one describes the exact JSON shape the model must
// return; the shapes mirror the structs in pkg/models.

func sentimentPrompt(p models.Product, reviews []models.Review) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are analyzing customer reviews for the product %q (category %s).\n", p.Name, p.Category)
	b.WriteString("Reviews:\n")
	for _, r := range reviews {
		fmt.Fprintf(&b, "- %d/5 stars: %s\n", r.Rating, r.Text)
	}
	fmt.Fprintf(&b, `
Summarize overall customer sentiment. Respond with only a JSON object:
{"product_id": %q, "overall": "positive"|"mixed"|"negative", "positive_pct": <int>, "negative_pct": <int>, "summary": "<two sentences>", "top_complaints": ["..."], "top_praises": ["..."]}
`, p.ID)
	return b.String()
}

func recommendPrompt(p models.Product, catalog []models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A shopper is viewing %q (category %s, $%.2f).\n", p.Name, p.Category, p.Price)
	b.WriteString("Store catalog:\n")
	for _, c := range catalog {
		if c.ID == p.ID {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s (%s, $%.2f, rating %.1f)\n", c.ID, c.Name, c.Category, c.Price, c.Rating)
	}
	b.WriteString(`
Pick the 3 products from the catalog this shopper is most likely to also buy.
Respond with only a JSON array:
[{"product_id": "...", "name": "...", "reason": "<one sentence>"}]
`)
	return b.String()
}

func pricingPrompt(p models.Product, sales []models.SalesRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest a price for %q (category %s), currently $%.2f with %d units in stock and an average rating of %.1f.\n",
		p.Name, p.Category, p.Price, p.Stock, p.Rating)
	b.WriteString("Recent daily sales (units):")
	for _, rec := range lastRecords(sales, 14) {
		fmt.Fprintf(&b, " %d", rec.Units)
	}
	fmt.Fprintf(&b, `
Balance demand, stock level and rating. Respond with only a JSON object:
{"product_id": %q, "current_price": %.2f, "suggested_price": <number>, "rationale": "<one sentence>"}
`, p.ID, p.Price)
	return b.String()
}

func forecastPrompt(p models.Product, sales []models.SalesRecord, horizon int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Forecast daily unit demand for %q (category %s) for the next %d days.\n", p.Name, p.Category, horizon)
	b.WriteString("Historical daily sales, oldest first (date units):\n")
	for _, rec := range lastRecords(sales, 30) {
		fmt.Fprintf(&b, "%s %d\n", rec.Date.Format("2006-01-02"), rec.Units)
	}
	fmt.Fprintf(&b, `
Respond with only a JSON object:
{"product_id": %q, "horizon_days": %d, "points": [{"date": "YYYY-MM-DD", "units": <int>}], "trend": "up"|"flat"|"down", "notes": "<one sentence>"}
`, p.ID, horizon)
	return b.String()
}

func lastRecords(sales []models.SalesRecord, n int) []models.SalesRecord {
	if len(sales) <= n {
		return sales
	}
	return sales[len(sales)-n:]
}
