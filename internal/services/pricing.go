package services

import (
	"context"
	"errors"
	"math"
	"strconv"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

const defaultMarginPerDozen = 200

// PriceSuggestion is the computed selling rate for one package size,
// with the inputs echoed back so the operator can see the working.
type PriceSuggestion struct {
	PackageSizeID  int     `json:"package_size_id"`
	PiecesPerBox   int     `json:"pieces_per_box"`
	BuyingRate     float64 `json:"buying_rate"`
	MarginPerDozen float64 `json:"margin_per_dozen"`
	CostPerDozen   float64 `json:"cost_per_dozen"`
	SuggestedRate  float64 `json:"suggested_rate"`
}

// SuggestPrice converts a per-box buying rate into a per-dozen selling
// rate: cost per dozen plus margin, rounded up to the nearest rupee.
func SuggestPrice(buyingRatePerUnit float64, piecesPerBox int, marginPerDozen float64) float64 {
	if piecesPerBox <= 0 {
		return 0
	}
	costPerDozen := (buyingRatePerUnit / float64(piecesPerBox)) * 12
	return math.Ceil(costPerDozen + marginPerDozen)
}

type PricingService struct {
	PurchaseStore   repositories.PurchaseStore
	PackageSizeRepo *repositories.PackageSizeRepository
	SettingRepo     *repositories.SettingRepository
}

func NewPricingService(store repositories.PurchaseStore, pkgRepo *repositories.PackageSizeRepository, settingRepo *repositories.SettingRepository) *PricingService {
	return &PricingService{
		PurchaseStore:   store,
		PackageSizeRepo: pkgRepo,
		SettingRepo:     settingRepo,
	}
}

// Margin returns the configured per-dozen margin, falling back to the
// default when the setting is missing or unparseable.
func (s *PricingService) Margin(ctx context.Context) float64 {
	setting, err := s.SettingRepo.Get(ctx, models.SettingKeyMarginPerDozen)
	if err != nil || setting == nil {
		return defaultMarginPerDozen
	}
	margin, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return defaultMarginPerDozen
	}
	return margin
}

// Suggest computes the selling rate for a package size from its latest
// buying rate in the season. The latest rate is the most recently created
// matching purchase item, not the most recent purchase date.
func (s *PricingService) Suggest(ctx context.Context, seasonID, packageSizeID int) (*PriceSuggestion, error) {
	pkg, err := s.PackageSizeRepo.Get(ctx, packageSizeID)
	if err != nil {
		return nil, errors.New("package size not found")
	}

	rate, found, err := s.PurchaseStore.LatestRate(ctx, seasonID, packageSizeID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("no purchase recorded for this package size in the season")
	}

	margin := s.Margin(ctx)
	costPerDozen := (rate / float64(pkg.PiecesPerBox)) * 12
	return &PriceSuggestion{
		PackageSizeID:  packageSizeID,
		PiecesPerBox:   pkg.PiecesPerBox,
		BuyingRate:     rate,
		MarginPerDozen: margin,
		CostPerDozen:   costPerDozen,
		SuggestedRate:  SuggestPrice(rate, pkg.PiecesPerBox, margin),
	}, nil
}
