package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mango-backend/internal/auth"
	"mango-backend/internal/cache"
	"mango-backend/internal/config"
	"mango-backend/internal/database"
	"mango-backend/internal/db"
	"mango-backend/internal/handlers"
	"mango-backend/internal/health"
	h "mango-backend/internal/http"
	"mango-backend/internal/middleware"
	"mango-backend/internal/monitoring"
	"mango-backend/internal/repositories"
	"mango-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; everything degrades to direct DB reads.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (continuing without cache)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	healthChecker := health.NewHealthChecker(pool)

	if cfg.Monitoring.Enabled {
		go monitoring.NewServer(pool, cfg.Monitoring.Port).Start()
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	farmerRepo := repositories.NewFarmerRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	seasonRepo := repositories.NewSeasonRepository(pool)
	packageSizeRepo := repositories.NewPackageSizeRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	enquiryRepo := repositories.NewEnquiryRepository(pool)
	ledgerRepo := repositories.NewLedgerRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)

	// Services
	authService := services.NewAuthService(settingRepo, jwtManager)
	farmerService := services.NewFarmerService(farmerRepo, ledgerRepo)
	customerService := services.NewCustomerService(customerRepo, ledgerRepo)
	seasonService := services.NewSeasonService(seasonRepo)
	packageSizeService := services.NewPackageSizeService(packageSizeRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, farmerRepo, packageSizeRepo)
	saleService := services.NewSaleService(saleRepo, customerRepo, packageSizeRepo, purchaseRepo)
	paymentService := services.NewPaymentService(paymentRepo, customerRepo, farmerRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	enquiryService := services.NewEnquiryService(enquiryRepo)
	stockService := services.NewStockService(stockRepo)
	pricingService := services.NewPricingService(purchaseRepo, packageSizeRepo, settingRepo)
	ledgerService := services.NewLedgerService(ledgerRepo)
	settingService := services.NewSettingService(settingRepo)
	reportService := services.NewReportService(reportRepo, seasonRepo, expenseRepo, stockRepo, ledgerRepo, settingRepo, saleRepo)
	dashboardService := services.NewDashboardService(reportRepo, seasonRepo, stockRepo, ledgerRepo, enquiryRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	farmerHandler := handlers.NewFarmerHandler(farmerService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	seasonHandler := handlers.NewSeasonHandler(seasonService)
	packageSizeHandler := handlers.NewPackageSizeHandler(packageSizeService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, seasonService)
	saleHandler := handlers.NewSaleHandler(saleService, seasonService, reportService, settingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, seasonService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, seasonService)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService)
	stockHandler := handlers.NewStockHandler(stockService, seasonService)
	pricingHandler := handlers.NewPricingHandler(pricingService, seasonService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, seasonService)
	reportHandler := handlers.NewReportHandler(reportService, seasonService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	settingHandler := handlers.NewSettingHandler(settingService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		farmerHandler,
		customerHandler,
		seasonHandler,
		packageSizeHandler,
		purchaseHandler,
		saleHandler,
		paymentHandler,
		expenseHandler,
		enquiryHandler,
		stockHandler,
		pricingHandler,
		ledgerHandler,
		reportHandler,
		dashboardHandler,
		settingHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.APILogging(middleware.MetricsMiddleware(corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
