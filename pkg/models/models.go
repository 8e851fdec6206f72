package models

import "time"

// Product represents a single item in the simulated store catalog.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Rating   float64 `json:"rating"`
}

// Review is a customer review attached to a product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SalesRecord is one day of sales for a product.
type SalesRecord struct {
	ProductID string    `json:"product_id"`
	Date      time.Time `json:"date"`
	Units     int       `json:"units"`
	Revenue   float64   `json:"revenue"`
}
