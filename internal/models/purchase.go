package models

import "time"

// Purchase records goods bought from a farmer within a season. The total
// is the sum of its items; item rows are replaced wholesale on edit.
type Purchase struct {
	ID           int            `json:"id"`
	FarmerID     int            `json:"farmer_id"`
	FarmerName   string         `json:"farmer_name,omitempty"` // joined
	SeasonID     int            `json:"season_id"`
	PurchaseDate time.Time      `json:"purchase_date"`
	TotalAmount  float64        `json:"total_amount"`
	Notes        string         `json:"notes"`
	Items        []PurchaseItem `json:"items,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type PurchaseItem struct {
	ID              int     `json:"id"`
	PurchaseID      int     `json:"purchase_id"`
	PackageSizeID   int     `json:"package_size_id"`
	PackageSizeName string  `json:"package_size_name,omitempty"` // joined
	Quantity        int     `json:"quantity"`
	RatePerUnit     float64 `json:"rate_per_unit"`
	Total           float64 `json:"total"`
}

type CreatePurchaseRequest struct {
	FarmerID     int                   `json:"farmer_id"`
	PurchaseDate string                `json:"purchase_date"` // YYYY-MM-DD
	Notes        string                `json:"notes"`
	Items        []PurchaseItemRequest `json:"items"`
}

type UpdatePurchaseRequest struct {
	FarmerID     int                   `json:"farmer_id"`
	PurchaseDate string                `json:"purchase_date"`
	Notes        string                `json:"notes"`
	Items        []PurchaseItemRequest `json:"items"`
}

type PurchaseItemRequest struct {
	PackageSizeID int     `json:"package_size_id"`
	Quantity      int     `json:"quantity"`
	RatePerUnit   float64 `json:"rate_per_unit"`
}
