package models

// Budget represents a monthly spending limit for a category.
// Month uses the YYYY-MM key format.
type Budget struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
	Month      string  `json:"month"`
}
