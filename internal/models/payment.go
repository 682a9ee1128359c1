package models

import "time"

// Payment entity kinds
const (
	EntityKindCustomer = "customer"
	EntityKindFarmer   = "farmer"
)

// Payment is an immutable receipt: money received from a customer or paid
// out to a farmer. Payments are never edited or deleted; corrections are
// made with a fresh entry.
type Payment struct {
	ID          int       `json:"id"`
	EntityKind  string    `json:"entity_kind"` // customer or farmer
	EntityID    int       `json:"entity_id"`
	EntityName  string    `json:"entity_name,omitempty"` // joined
	SeasonID    int       `json:"season_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Mode        string    `json:"mode"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreatePaymentRequest struct {
	EntityKind  string  `json:"entity_kind"`
	EntityID    int     `json:"entity_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"` // YYYY-MM-DD
	Mode        string  `json:"mode"`
	Notes       string  `json:"notes"`
}
