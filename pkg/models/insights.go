package models

// SentimentReport is the structured response for the sentiment feature.
type SentimentReport struct {
	ProductID     string   `json:"product_id"`
	Overall       string   `json:"overall"` // "positive", "mixed" or "negative"
	PositivePct   int      `json:"positive_pct"`
	NegativePct   int      `json:"negative_pct"`
	Summary       string   `json:"summary"`
	TopComplaints []string `json:"top_complaints"`
	TopPraises    []string `json:"top_praises"`
}

// Recommendation is one suggested product for a shopper viewing another product.
type Recommendation struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
}

// PricingSuggestion is the structured response for the dynamic pricing feature.
type PricingSuggestion struct {
	ProductID      string  `json:"product_id"`
	CurrentPrice   float64 `json:"current_price"`
	SuggestedPrice float64 `json:"suggested_price"`
	Rationale      string  `json:"rationale"`
}

// ForecastPoint is one projected day in a demand forecast.
type ForecastPoint struct {
	Date  string `json:"date"`
	Units int    `json:"units"`
}

// DemandForecast is the structured response for the demand forecasting feature.
type DemandForecast struct {
	ProductID string          `json:"product_id"`
	Horizon   int             `json:"horizon_days"`
	Points    []ForecastPoint `json:"points"`
	Trend     string          `json:"trend"` // "up", "flat" or "down"
	Notes     string          `json:"notes"`
}
