package models

import "time"

// PackageSize is the unit of trade (a box of a given piece count). It is
// the basis for both purchase and sale quantities.
type PackageSize struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	PiecesPerBox  int       `json:"pieces_per_box"`
	TransportCost float64   `json:"transport_cost"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreatePackageSizeRequest struct {
	Name          string  `json:"name"`
	PiecesPerBox  int     `json:"pieces_per_box"`
	TransportCost float64 `json:"transport_cost"`
}

type UpdatePackageSizeRequest struct {
	Name          string  `json:"name"`
	PiecesPerBox  int     `json:"pieces_per_box"`
	TransportCost float64 `json:"transport_cost"`
	IsActive      *bool   `json:"is_active"`
}
