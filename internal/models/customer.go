package models

import "time"

// Customer types. Older databases carry the legacy values "walk-in" and
// "delivery"; NormalizeCustomerType maps them at the data-entry boundary.
const (
	CustomerTypeWalkInCash   = "walk-in-cash"
	CustomerTypeWalkInOnline = "walk-in-online"
	CustomerTypeCredit       = "credit"
)

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Balance fields are folds over the customer's ledger entries,
	// populated on read. TotalOutstanding is the unpaid impact of
	// credit sales, TotalPaid the payments received.
	TotalOutstanding float64 `json:"total_outstanding"`
	TotalPaid        float64 `json:"total_paid"`
	Outstanding      float64 `json:"outstanding"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

// NormalizeCustomerType remaps legacy customer type values to their current
// equivalents. Unknown or empty values default to walk-in-cash.
func NormalizeCustomerType(t string) string {
	switch t {
	case CustomerTypeWalkInCash, CustomerTypeWalkInOnline, CustomerTypeCredit:
		return t
	case "walk-in":
		return CustomerTypeWalkInCash
	case "delivery":
		return CustomerTypeWalkInOnline
	default:
		return CustomerTypeWalkInCash
	}
}
