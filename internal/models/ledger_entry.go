package models

import "time"

// LedgerEntryType represents the type of ledger entry
type LedgerEntryType string

const (
	LedgerEntryTypePurchase         LedgerEntryType = "PURCHASE"          // Goods bought from a farmer
	LedgerEntryTypePurchaseEdit     LedgerEntryType = "PURCHASE_EDIT"     // Delta from editing a purchase
	LedgerEntryTypePurchaseReversal LedgerEntryType = "PURCHASE_REVERSAL" // Purchase deleted
	LedgerEntryTypeSale             LedgerEntryType = "SALE"              // Unpaid impact of a sale
	LedgerEntryTypeSaleEdit         LedgerEntryType = "SALE_EDIT"         // Delta from editing a sale
	LedgerEntryTypeSaleReversal     LedgerEntryType = "SALE_REVERSAL"     // Sale deleted
	LedgerEntryTypePayment          LedgerEntryType = "PAYMENT"           // Payment received/made
)

// Reference types linking an entry back to its source row
const (
	LedgerRefPurchase = "purchase"
	LedgerRefSale     = "sale"
	LedgerRefPayment  = "payment"
)

// LedgerEntry is a single signed event in the append-only accounting
// ledger. Balances are never mutated in place: they are folds over an
// entity's entry stream, so edits and deletes post compensating entries
// instead of rewriting totals.
type LedgerEntry struct {
	ID             int             `json:"id"`
	EntityKind     string          `json:"entity_kind"` // customer or farmer
	EntityID       int             `json:"entity_id"`
	SeasonID       int             `json:"season_id"`
	EntryType      LedgerEntryType `json:"entry_type"`
	Description    string          `json:"description"`
	Debit          float64         `json:"debit"`           // increases what is owed
	Credit         float64         `json:"credit"`          // decreases what is owed
	RunningBalance float64         `json:"running_balance"` // balance after this entry
	ReferenceID    *int            `json:"reference_id"`    // purchase/sale/payment id
	ReferenceType  string          `json:"reference_type"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateLedgerEntryRequest is used when posting a new ledger entry
type CreateLedgerEntryRequest struct {
	EntityKind    string          `json:"entity_kind"`
	EntityID      int             `json:"entity_id"`
	SeasonID      int             `json:"season_id"`
	EntryType     LedgerEntryType `json:"entry_type"`
	Description   string          `json:"description"`
	Debit         float64         `json:"debit"`
	Credit        float64         `json:"credit"`
	ReferenceID   *int            `json:"reference_id"`
	ReferenceType string          `json:"reference_type"`
	Notes         string          `json:"notes"`
}

// EntityBalance is the aggregate view of one entity's ledger.
//
// For a farmer, TotalCredit is the surviving value of purchases from them
// and TotalPaid the payments made to them. For a customer, TotalCredit
// holds the surviving unpaid sale impact and TotalPaid the payments
// received. Outstanding is computed, not stored.
type EntityBalance struct {
	EntityKind  string  `json:"entity_kind"`
	EntityID    int     `json:"entity_id"`
	TotalCredit float64 `json:"total_credit"`
	TotalPaid   float64 `json:"total_paid"`
	Outstanding float64 `json:"outstanding"`
	EntryCount  int     `json:"entry_count"`
}

// LedgerFilter is used for filtering ledger entries
type LedgerFilter struct {
	EntityKind string          `json:"entity_kind"`
	EntityID   int             `json:"entity_id"`
	SeasonID   int             `json:"season_id"`
	EntryType  LedgerEntryType `json:"entry_type"`
	StartDate  *time.Time      `json:"start_date"`
	EndDate    *time.Time      `json:"end_date"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}
