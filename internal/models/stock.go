package models

// StockLevel is the incrementally-maintained per-package counter for a
// season, updated inside the same transaction as the purchase or sale
// that moves it. Available = Purchased - Sold.
type StockLevel struct {
	SeasonID        int    `json:"season_id"`
	PackageSizeID   int    `json:"package_size_id"`
	PackageSizeName string `json:"package_size_name,omitempty"` // joined
	Purchased       int    `json:"purchased"`
	Sold            int    `json:"sold"`
	Available       int    `json:"available"`
}
