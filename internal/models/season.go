package models

import "time"

// Season is a bounded trading period. Exactly one season is active at a
// time; activating a season force-deactivates every other one.
type Season struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	RentAmount float64   `json:"rent_amount"`
	RentPaid   float64   `json:"rent_paid"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateSeasonRequest struct {
	Name       string  `json:"name"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`
	RentAmount float64 `json:"rent_amount"`
}

type UpdateSeasonRequest struct {
	Name       string  `json:"name"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	RentAmount float64 `json:"rent_amount"`
	RentPaid   float64 `json:"rent_paid"`
}
