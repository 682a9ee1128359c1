package models

import "time"

// Sale payment statuses
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
)

// Sale records goods sold to a customer within a season. Only the unpaid
// impact (total_amount - amount_paid) touches the customer's ledger.
type Sale struct {
	ID             int        `json:"id"`
	CustomerID     int        `json:"customer_id"`
	CustomerName   string     `json:"customer_name,omitempty"` // joined
	SeasonID       int        `json:"season_id"`
	SaleDate       time.Time  `json:"sale_date"`
	InvoiceNumber  string     `json:"invoice_number"`
	PaymentMode    string     `json:"payment_mode"`
	PaymentStatus  string     `json:"payment_status"`
	TotalAmount    float64    `json:"total_amount"`
	AmountPaid     float64    `json:"amount_paid"`
	DeliveryCharge float64    `json:"delivery_charge"`
	Notes          string     `json:"notes"`
	EnquiryID      *int       `json:"enquiry_id,omitempty"`
	Items          []SaleItem `json:"items,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BalanceImpact is the amount a sale adds to the customer's outstanding
// balance. Creation, edit and deletion all post or reverse this same
// quantity, so partial payments never over-subtract.
func (s *Sale) BalanceImpact() float64 {
	return s.TotalAmount - s.AmountPaid
}

type SaleItem struct {
	ID              int     `json:"id"`
	SaleID          int     `json:"sale_id"`
	PackageSizeID   int     `json:"package_size_id"`
	PackageSizeName string  `json:"package_size_name,omitempty"` // joined
	Quantity        int     `json:"quantity"`
	RatePerDozen    float64 `json:"rate_per_dozen"`
	BuyingRate      float64 `json:"buying_rate"` // cost basis captured at sale time
	Total           float64 `json:"total"`
}

type CreateSaleRequest struct {
	CustomerID     int               `json:"customer_id"`
	SaleDate       string            `json:"sale_date"` // YYYY-MM-DD
	PaymentMode    string            `json:"payment_mode"`
	PaymentStatus  string            `json:"payment_status"`
	DeliveryCharge float64           `json:"delivery_charge"`
	Notes          string            `json:"notes"`
	EnquiryID      *int              `json:"enquiry_id"`
	Items          []SaleItemRequest `json:"items"`
}

type UpdateSaleRequest struct {
	CustomerID     int               `json:"customer_id"`
	SaleDate       string            `json:"sale_date"`
	PaymentMode    string            `json:"payment_mode"`
	PaymentStatus  string            `json:"payment_status"`
	AmountPaid     float64           `json:"amount_paid"`
	DeliveryCharge float64           `json:"delivery_charge"`
	Notes          string            `json:"notes"`
	Items          []SaleItemRequest `json:"items"`
}

type SaleItemRequest struct {
	PackageSizeID int     `json:"package_size_id"`
	Quantity      int     `json:"quantity"`
	RatePerDozen  float64 `json:"rate_per_dozen"`
}
