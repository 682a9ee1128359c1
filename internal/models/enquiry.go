package models

import "time"

// Enquiry statuses
const (
	EnquiryStatusPending   = "pending"
	EnquiryStatusConfirmed = "confirmed"
	EnquiryStatusFulfilled = "fulfilled"
	EnquiryStatusCancelled = "cancelled"
)

// Enquiry is a recorded customer intent to buy, optionally converted into
// a sale (status moves to fulfilled on conversion).
type Enquiry struct {
	ID            int       `json:"id"`
	CustomerID    *int      `json:"customer_id,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty"` // joined when linked
	Name          string    `json:"name"`                    // free text when not linked
	Phone         string    `json:"phone"`
	RequiredDate  time.Time `json:"required_date"`
	Type          string    `json:"type"`
	PackageSizeID int       `json:"package_size_id"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateEnquiryRequest struct {
	CustomerID    *int   `json:"customer_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	RequiredDate  string `json:"required_date"` // YYYY-MM-DD
	Type          string `json:"type"`
	PackageSizeID int    `json:"package_size_id"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
}

type UpdateEnquiryRequest struct {
	CustomerID    *int   `json:"customer_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	RequiredDate  string `json:"required_date"`
	Type          string `json:"type"`
	PackageSizeID int    `json:"package_size_id"`
	Quantity      int    `json:"quantity"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}
