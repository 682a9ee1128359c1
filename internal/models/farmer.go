package models

import "time"

type Farmer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Village   string    `json:"village"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Balance fields are folds over the farmer's ledger entries,
	// populated on read. TotalCredit is the value of goods purchased
	// from the farmer, TotalPaid the payments made to them.
	TotalCredit float64 `json:"total_credit"`
	TotalPaid   float64 `json:"total_paid"`
	Outstanding float64 `json:"outstanding"`
}

// CreateFarmerRequest represents the request body for creating a farmer
type CreateFarmerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Village string `json:"village"`
}

// UpdateFarmerRequest represents the request body for updating a farmer
type UpdateFarmerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Village string `json:"village"`
}
