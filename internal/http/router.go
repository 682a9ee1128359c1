package http

import (
	"mango-backend/internal/handlers"
	"mango-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	farmerHandler *handlers.FarmerHandler,
	customerHandler *handlers.CustomerHandler,
	seasonHandler *handlers.SeasonHandler,
	packageSizeHandler *handlers.PackageSizeHandler,
	purchaseHandler *handlers.PurchaseHandler,
	saleHandler *handlers.SaleHandler,
	paymentHandler *handlers.PaymentHandler,
	expenseHandler *handlers.ExpenseHandler,
	enquiryHandler *handlers.EnquiryHandler,
	stockHandler *handlers.StockHandler,
	pricingHandler *handlers.PricingHandler,
	ledgerHandler *handlers.LedgerHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	settingHandler *handlers.SettingHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - PIN management
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/change-pin", authHandler.ChangePIN).Methods("POST")

	// Protected API routes - Farmers
	farmersAPI := r.PathPrefix("/api/farmers").Subrouter()
	farmersAPI.Use(authMiddleware.Authenticate)
	farmersAPI.HandleFunc("", farmerHandler.ListFarmers).Methods("GET")
	farmersAPI.HandleFunc("", farmerHandler.CreateFarmer).Methods("POST")
	farmersAPI.HandleFunc("/{id}", farmerHandler.GetFarmer).Methods("GET")
	farmersAPI.HandleFunc("/{id}", farmerHandler.UpdateFarmer).Methods("PUT")
	farmersAPI.HandleFunc("/{id}", farmerHandler.DeleteFarmer).Methods("DELETE")
	farmersAPI.HandleFunc("/{id}/ledger", farmerHandler.GetLedger).Methods("GET")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")
	customersAPI.HandleFunc("/{id}/ledger", customerHandler.GetLedger).Methods("GET")

	// Protected API routes - Seasons
	seasonsAPI := r.PathPrefix("/api/seasons").Subrouter()
	seasonsAPI.Use(authMiddleware.Authenticate)
	seasonsAPI.HandleFunc("", seasonHandler.ListSeasons).Methods("GET")
	seasonsAPI.HandleFunc("", seasonHandler.StartSeason).Methods("POST")
	seasonsAPI.HandleFunc("/active", seasonHandler.GetActiveSeason).Methods("GET")
	seasonsAPI.HandleFunc("/{id}", seasonHandler.GetSeason).Methods("GET")
	seasonsAPI.HandleFunc("/{id}", seasonHandler.UpdateSeason).Methods("PUT")
	seasonsAPI.HandleFunc("/{id}", seasonHandler.DeleteSeason).Methods("DELETE")
	seasonsAPI.HandleFunc("/{id}/activate", seasonHandler.ActivateSeason).Methods("POST")

	// Protected API routes - Package sizes
	packageSizesAPI := r.PathPrefix("/api/package-sizes").Subrouter()
	packageSizesAPI.Use(authMiddleware.Authenticate)
	packageSizesAPI.HandleFunc("", packageSizeHandler.ListPackageSizes).Methods("GET")
	packageSizesAPI.HandleFunc("", packageSizeHandler.CreatePackageSize).Methods("POST")
	packageSizesAPI.HandleFunc("/{id}", packageSizeHandler.GetPackageSize).Methods("GET")
	packageSizesAPI.HandleFunc("/{id}", packageSizeHandler.UpdatePackageSize).Methods("PUT")
	packageSizesAPI.HandleFunc("/{id}", packageSizeHandler.DeletePackageSize).Methods("DELETE")

	// Protected API routes - Purchases
	purchasesAPI := r.PathPrefix("/api/purchases").Subrouter()
	purchasesAPI.Use(authMiddleware.Authenticate)
	purchasesAPI.HandleFunc("", purchaseHandler.ListPurchases).Methods("GET")
	purchasesAPI.HandleFunc("", purchaseHandler.RecordPurchase).Methods("POST")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.GetPurchase).Methods("GET")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.UpdatePurchase).Methods("PUT")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.DeletePurchase).Methods("DELETE")

	// Protected API routes - Sales
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.Use(authMiddleware.Authenticate)
	salesAPI.HandleFunc("", saleHandler.ListSales).Methods("GET")
	salesAPI.HandleFunc("", saleHandler.RecordSale).Methods("POST")
	salesAPI.HandleFunc("/{id}", saleHandler.GetSale).Methods("GET")
	salesAPI.HandleFunc("/{id}", saleHandler.UpdateSale).Methods("PUT")
	salesAPI.HandleFunc("/{id}", saleHandler.DeleteSale).Methods("DELETE")
	salesAPI.HandleFunc("/{id}/receipt", saleHandler.GetReceipt).Methods("GET")
	salesAPI.HandleFunc("/{id}/share", saleHandler.GetShareLink).Methods("GET")

	// Protected API routes - Payments (no update or delete; payments are final)
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", paymentHandler.RecordPayment).Methods("POST")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.GetPayment).Methods("GET")

	// Protected API routes - Expenses
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("/totals", expenseHandler.GetCategoryTotals).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.GetExpense).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.UpdateExpense).Methods("PUT")
	expensesAPI.HandleFunc("/{id}", expenseHandler.DeleteExpense).Methods("DELETE")

	// Protected API routes - Enquiries
	enquiriesAPI := r.PathPrefix("/api/enquiries").Subrouter()
	enquiriesAPI.Use(authMiddleware.Authenticate)
	enquiriesAPI.HandleFunc("", enquiryHandler.ListEnquiries).Methods("GET")
	enquiriesAPI.HandleFunc("", enquiryHandler.CreateEnquiry).Methods("POST")
	enquiriesAPI.HandleFunc("/pending-count", enquiryHandler.CountPending).Methods("GET")
	enquiriesAPI.HandleFunc("/{id}", enquiryHandler.GetEnquiry).Methods("GET")
	enquiriesAPI.HandleFunc("/{id}", enquiryHandler.UpdateEnquiry).Methods("PUT")
	enquiriesAPI.HandleFunc("/{id}", enquiryHandler.DeleteEnquiry).Methods("DELETE")
	enquiriesAPI.HandleFunc("/{id}/convert", enquiryHandler.ConvertToSale).Methods("POST")

	// Protected API routes - Stock
	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("", stockHandler.GetStock).Methods("GET")
	stockAPI.HandleFunc("/verify", stockHandler.VerifyStock).Methods("GET")
	stockAPI.HandleFunc("/recompute", stockHandler.RecomputeStock).Methods("POST")

	// Protected API routes - Pricing
	pricingAPI := r.PathPrefix("/api/pricing").Subrouter()
	pricingAPI.Use(authMiddleware.Authenticate)
	pricingAPI.HandleFunc("/suggest", pricingHandler.SuggestPrice).Methods("GET")

	// Protected API routes - Ledger
	ledgerAPI := r.PathPrefix("/api/ledger").Subrouter()
	ledgerAPI.Use(authMiddleware.Authenticate)
	ledgerAPI.HandleFunc("", ledgerHandler.ListEntries).Methods("GET")
	ledgerAPI.HandleFunc("/debtors", ledgerHandler.ListDebtors).Methods("GET")
	ledgerAPI.HandleFunc("/outstanding", ledgerHandler.GetTotalOutstanding).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/season", reportHandler.GetSeasonReport).Methods("GET")
	reportsAPI.HandleFunc("/season/csv", reportHandler.ExportSeasonReportCSV).Methods("GET")
	reportsAPI.HandleFunc("/season/pdf", reportHandler.ExportSeasonReportPDF).Methods("GET")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.GetSummary).Methods("GET")

	// Protected API routes - Settings
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", settingHandler.ListSettings).Methods("GET")
	settingsAPI.HandleFunc("/{key}", settingHandler.UpdateSetting).Methods("PUT")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
