package services

import (
	"context"
	"fmt"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

// InsufficientStockError is returned when a sale asks for more boxes of a
// package than the season has on hand. It names the package and the
// available count so the operator knows what to correct.
type InsufficientStockError struct {
	PackageSizeID   int    `json:"package_size_id"`
	PackageSizeName string `json:"package_size_name"`
	Requested       int    `json:"requested"`
	Available       int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.PackageSizeName, e.Requested, e.Available)
}

// StockMismatch reports a divergence between the incremental counters and
// a full scan of item rows for one package size.
type StockMismatch struct {
	PackageSizeID    int `json:"package_size_id"`
	CounterPurchased int `json:"counter_purchased"`
	CounterSold      int `json:"counter_sold"`
	ScannedPurchased int `json:"scanned_purchased"`
	ScannedSold      int `json:"scanned_sold"`
}

// ComputeStock derives per-package availability from raw item rows:
// purchased minus sold for every package size that appears in either
// list. Pure; the persisted counters are checked against it.
func ComputeStock(purchaseItems []models.PurchaseItem, saleItems []models.SaleItem) map[int]int {
	stock := make(map[int]int)
	for _, item := range purchaseItems {
		stock[item.PackageSizeID] += item.Quantity
	}
	for _, item := range saleItems {
		stock[item.PackageSizeID] -= item.Quantity
	}
	return stock
}

type StockService struct {
	StockRepo *repositories.StockRepository
}

func NewStockService(stockRepo *repositories.StockRepository) *StockService {
	return &StockService{StockRepo: stockRepo}
}

func (s *StockService) GetStock(ctx context.Context, seasonID int) ([]models.StockLevel, error) {
	return s.StockRepo.GetBySeason(ctx, seasonID)
}

// Verify compares the incremental counters against a full scan of the
// season's item rows and returns any divergences. An empty slice means
// the counters are consistent.
func (s *StockService) Verify(ctx context.Context, seasonID int) ([]StockMismatch, error) {
	scanned, err := s.StockRepo.ScanTotals(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	counters, err := s.StockRepo.GetBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	counterByPkg := make(map[int]models.StockLevel, len(counters))
	for _, l := range counters {
		counterByPkg[l.PackageSizeID] = l
	}

	var mismatches []StockMismatch
	for pkgID, scan := range scanned {
		counter := counterByPkg[pkgID]
		if counter.Purchased != scan.Purchased || counter.Sold != scan.Sold {
			mismatches = append(mismatches, StockMismatch{
				PackageSizeID:    pkgID,
				CounterPurchased: counter.Purchased,
				CounterSold:      counter.Sold,
				ScannedPurchased: scan.Purchased,
				ScannedSold:      scan.Sold,
			})
		}
	}
	for pkgID, counter := range counterByPkg {
		if _, ok := scanned[pkgID]; ok {
			continue
		}
		if counter.Purchased != 0 || counter.Sold != 0 {
			mismatches = append(mismatches, StockMismatch{
				PackageSizeID:    pkgID,
				CounterPurchased: counter.Purchased,
				CounterSold:      counter.Sold,
			})
		}
	}
	return mismatches, nil
}

// Recompute rebuilds the counters from the item rows. Used to repair a
// divergence reported by Verify.
func (s *StockService) Recompute(ctx context.Context, seasonID int) error {
	return s.StockRepo.RecomputeFromItems(ctx, seasonID)
}
