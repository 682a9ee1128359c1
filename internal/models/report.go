package models

// SeasonReport is the profit & loss rollup for one season.
type SeasonReport struct {
	Season             *Season            `json:"season"`
	SalesRevenue       float64            `json:"sales_revenue"` // sale totals incl. delivery charges
	PurchaseCost       float64            `json:"purchase_cost"`
	ExpenseTotal       float64            `json:"expense_total"`
	SeasonRent         float64            `json:"season_rent"`
	Profit             float64            `json:"profit"`
	SaleCount          int                `json:"sale_count"`
	PurchaseCount      int                `json:"purchase_count"`
	CustomerOwed       float64            `json:"customer_owed"` // outstanding receivable
	FarmerOwed         float64            `json:"farmer_owed"`   // outstanding payable
	Stock              []StockLevel       `json:"stock"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
}

// DashboardSummary is the single-call payload for the landing page.
type DashboardSummary struct {
	Season           *Season      `json:"season"`
	TodaySales       float64      `json:"today_sales"`
	TodayPurchases   float64      `json:"today_purchases"`
	SalesRevenue     float64      `json:"sales_revenue"`
	PurchaseCost     float64      `json:"purchase_cost"`
	CustomerOwed     float64      `json:"customer_owed"`
	FarmerOwed       float64      `json:"farmer_owed"`
	PendingEnquiries int          `json:"pending_enquiries"`
	Stock            []StockLevel `json:"stock"`
}
