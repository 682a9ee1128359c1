package services

import (
	"context"
	"errors"
	"fmt"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"
)

// FarmerSource is the farmer lookup the purchase and payment services
// need. Satisfied by *repositories.FarmerRepository.
type FarmerSource interface {
	Get(ctx context.Context, id int) (*models.Farmer, error)
}

// PackageSizeSource is the package-size lookup the purchase and sale
// services need. Satisfied by *repositories.PackageSizeRepository.
type PackageSizeSource interface {
	Get(ctx context.Context, id int) (*models.PackageSize, error)
}

// ErrPurchaseNotFound reports an edit or delete against a purchase that
// does not exist.
var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchaseService struct {
	Store        repositories.PurchaseStore
	Farmers      FarmerSource
	PackageSizes PackageSizeSource
}

func NewPurchaseService(store repositories.PurchaseStore, farmers FarmerSource, packageSizes PackageSizeSource) *PurchaseService {
	return &PurchaseService{
		Store:        store,
		Farmers:      farmers,
		PackageSizes: packageSizes,
	}
}

func (s *PurchaseService) GetPurchase(ctx context.Context, id int) (*models.Purchase, error) {
	return s.Store.Get(ctx, id)
}

func (s *PurchaseService) ListPurchases(ctx context.Context, seasonID int) ([]*models.Purchase, error) {
	return s.Store.List(ctx, seasonID)
}

func (s *PurchaseService) buildItems(reqs []models.PurchaseItemRequest) ([]models.PurchaseItem, float64, error) {
	if len(reqs) == 0 {
		return nil, 0, errors.New("purchase must have at least one item")
	}
	var items []models.PurchaseItem
	var total float64
	for _, ir := range reqs {
		if ir.Quantity < 1 {
			return nil, 0, errors.New("item quantity must be at least 1")
		}
		if ir.RatePerUnit < 0 {
			return nil, 0, errors.New("item rate cannot be negative")
		}
		item := models.PurchaseItem{
			PackageSizeID: ir.PackageSizeID,
			Quantity:      ir.Quantity,
			RatePerUnit:   ir.RatePerUnit,
			Total:         float64(ir.Quantity) * ir.RatePerUnit,
		}
		items = append(items, item)
		total += item.Total
	}
	return items, total, nil
}

// RecordPurchase creates a purchase with its items, posts the farmer's
// ledger debit and moves the stock counters, all in one transaction.
func (s *PurchaseService) RecordPurchase(ctx context.Context, seasonID int, req *models.CreatePurchaseRequest) (*models.Purchase, error) {
	farmer, err := s.Farmers.Get(ctx, req.FarmerID)
	if err != nil {
		return nil, errors.New("farmer not found")
	}

	items, total, err := s.buildItems(req.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, err := s.PackageSizes.Get(ctx, item.PackageSizeID); err != nil {
			return nil, fmt.Errorf("package size %d not found", item.PackageSizeID)
		}
	}

	purchaseDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.PurchaseDate)
	if err != nil {
		return nil, errors.New("purchase date must be YYYY-MM-DD")
	}

	purchase := &models.Purchase{
		FarmerID:     req.FarmerID,
		SeasonID:     seasonID,
		PurchaseDate: purchaseDate,
		TotalAmount:  total,
		Notes:        req.Notes,
	}

	err = s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.PurchaseTx) error {
		if err := tx.InsertPurchase(ctx, purchase); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, purchase.ID, items); err != nil {
			return err
		}
		_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
			EntityKind:    models.EntityKindFarmer,
			EntityID:      purchase.FarmerID,
			SeasonID:      seasonID,
			EntryType:     models.LedgerEntryTypePurchase,
			Description:   fmt.Sprintf("Purchase #%d from %s", purchase.ID, farmer.Name),
			Debit:         total,
			ReferenceID:   &purchase.ID,
			ReferenceType: models.LedgerRefPurchase,
		})
		if err != nil {
			return err
		}
		for pkgID, qty := range quantityByPackage(items) {
			if err := tx.AdjustStock(ctx, seasonID, pkgID, qty, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Store.Get(ctx, purchase.ID)
}

// EditPurchase replaces a purchase's items wholesale and posts the ledger
// delta. When the farmer changes, the old farmer gets a full reversal and
// the new farmer a fresh debit.
func (s *PurchaseService) EditPurchase(ctx context.Context, id int, req *models.UpdatePurchaseRequest) (*models.Purchase, error) {
	old, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}

	farmer, err := s.Farmers.Get(ctx, req.FarmerID)
	if err != nil {
		return nil, errors.New("farmer not found")
	}

	items, total, err := s.buildItems(req.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, err := s.PackageSizes.Get(ctx, item.PackageSizeID); err != nil {
			return nil, fmt.Errorf("package size %d not found", item.PackageSizeID)
		}
	}

	purchaseDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.PurchaseDate)
	if err != nil {
		return nil, errors.New("purchase date must be YYYY-MM-DD")
	}

	updated := &models.Purchase{
		ID:           id,
		FarmerID:     req.FarmerID,
		SeasonID:     old.SeasonID,
		PurchaseDate: purchaseDate,
		TotalAmount:  total,
		Notes:        req.Notes,
	}

	err = s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.PurchaseTx) error {
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := tx.UpdatePurchase(ctx, updated); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, id, items); err != nil {
			return err
		}

		if req.FarmerID == old.FarmerID {
			if delta := total - old.TotalAmount; delta != 0 {
				entry := &models.CreateLedgerEntryRequest{
					EntityKind:    models.EntityKindFarmer,
					EntityID:      old.FarmerID,
					SeasonID:      old.SeasonID,
					EntryType:     models.LedgerEntryTypePurchaseEdit,
					Description:   fmt.Sprintf("Purchase #%d edited", id),
					ReferenceID:   &id,
					ReferenceType: models.LedgerRefPurchase,
				}
				if delta > 0 {
					entry.Debit = delta
				} else {
					entry.Credit = -delta
				}
				if _, err := tx.PostLedgerEntry(ctx, entry); err != nil {
					return err
				}
			}
		} else {
			_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
				EntityKind:    models.EntityKindFarmer,
				EntityID:      old.FarmerID,
				SeasonID:      old.SeasonID,
				EntryType:     models.LedgerEntryTypePurchaseReversal,
				Description:   fmt.Sprintf("Purchase #%d moved to %s", id, farmer.Name),
				Credit:        old.TotalAmount,
				ReferenceID:   &id,
				ReferenceType: models.LedgerRefPurchase,
			})
			if err != nil {
				return err
			}
			_, err = tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
				EntityKind:    models.EntityKindFarmer,
				EntityID:      req.FarmerID,
				SeasonID:      old.SeasonID,
				EntryType:     models.LedgerEntryTypePurchaseEdit,
				Description:   fmt.Sprintf("Purchase #%d from %s", id, farmer.Name),
				Debit:         total,
				ReferenceID:   &id,
				ReferenceType: models.LedgerRefPurchase,
			})
			if err != nil {
				return err
			}
		}

		deltas := quantityByPackage(items)
		for pkgID, qty := range quantityByPackage(old.Items) {
			deltas[pkgID] -= qty
		}
		for pkgID, delta := range deltas {
			if delta == 0 {
				continue
			}
			if err := tx.AdjustStock(ctx, old.SeasonID, pkgID, delta, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Store.Get(ctx, id)
}

// DeletePurchase removes a purchase and its items, reverses the farmer's
// ledger debit and returns the quantities from the stock counters.
func (s *PurchaseService) DeletePurchase(ctx context.Context, id int) error {
	old, err := s.Store.Get(ctx, id)
	if err != nil {
		return ErrPurchaseNotFound
	}

	return s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.PurchaseTx) error {
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := tx.DeletePurchase(ctx, id); err != nil {
			return err
		}
		_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
			EntityKind:    models.EntityKindFarmer,
			EntityID:      old.FarmerID,
			SeasonID:      old.SeasonID,
			EntryType:     models.LedgerEntryTypePurchaseReversal,
			Description:   fmt.Sprintf("Purchase #%d deleted", id),
			Credit:        old.TotalAmount,
			ReferenceID:   &id,
			ReferenceType: models.LedgerRefPurchase,
		})
		if err != nil {
			return err
		}
		for pkgID, qty := range quantityByPackage(old.Items) {
			if err := tx.AdjustStock(ctx, old.SeasonID, pkgID, -qty, 0); err != nil {
				return err
			}
		}
		return nil
	})
}

// LatestRate returns the most recently created purchase rate for a
// package size within a season.
func (s *PurchaseService) LatestRate(ctx context.Context, seasonID, packageSizeID int) (float64, bool, error) {
	return s.Store.LatestRate(ctx, seasonID, packageSizeID)
}

func quantityByPackage(items []models.PurchaseItem) map[int]int {
	result := make(map[int]int)
	for _, item := range items {
		result[item.PackageSizeID] += item.Quantity
	}
	return result
}
