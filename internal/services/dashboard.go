package services

import (
	"context"
	"time"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"
)

// DashboardService assembles the single-call landing page payload for
// the active season.
type DashboardService struct {
	Reports     *repositories.ReportRepository
	SeasonRepo  *repositories.SeasonRepository
	StockRepo   *repositories.StockRepository
	LedgerRepo  *repositories.LedgerRepository
	EnquiryRepo *repositories.EnquiryRepository
}

func NewDashboardService(
	reports *repositories.ReportRepository,
	seasonRepo *repositories.SeasonRepository,
	stockRepo *repositories.StockRepository,
	ledgerRepo *repositories.LedgerRepository,
	enquiryRepo *repositories.EnquiryRepository,
) *DashboardService {
	return &DashboardService{
		Reports:     reports,
		SeasonRepo:  seasonRepo,
		StockRepo:   stockRepo,
		LedgerRepo:  ledgerRepo,
		EnquiryRepo: enquiryRepo,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	season, err := s.SeasonRepo.GetActive(ctx)
	if err != nil {
		// No season started yet; the dashboard stays empty.
		return &models.DashboardSummary{}, nil
	}

	now := timeutil.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timeutil.IST)
	todaySales, err := s.Reports.SalesTotalForDate(ctx, season.ID, today)
	if err != nil {
		return nil, err
	}
	todayPurchases, err := s.Reports.PurchaseTotalForDate(ctx, season.ID, today)
	if err != nil {
		return nil, err
	}
	revenue, _, err := s.Reports.SalesTotals(ctx, season.ID)
	if err != nil {
		return nil, err
	}
	cost, _, err := s.Reports.PurchaseTotals(ctx, season.ID)
	if err != nil {
		return nil, err
	}
	customerOwed, err := s.LedgerRepo.TotalOutstanding(ctx, models.EntityKindCustomer)
	if err != nil {
		return nil, err
	}
	farmerOwed, err := s.LedgerRepo.TotalOutstanding(ctx, models.EntityKindFarmer)
	if err != nil {
		return nil, err
	}
	pending, err := s.EnquiryRepo.CountByStatus(ctx, models.EnquiryStatusPending)
	if err != nil {
		return nil, err
	}
	stock, err := s.StockRepo.GetBySeason(ctx, season.ID)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		Season:           season,
		TodaySales:       todaySales,
		TodayPurchases:   todayPurchases,
		SalesRevenue:     revenue,
		PurchaseCost:     cost,
		CustomerOwed:     customerOwed,
		FarmerOwed:       farmerOwed,
		PendingEnquiries: pending,
		Stock:            stock,
	}, nil
}
