package services

import (
	"context"
	"errors"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

type FarmerService struct {
	Repo   *repositories.FarmerRepository
	Ledger *repositories.LedgerRepository
}

func NewFarmerService(repo *repositories.FarmerRepository, ledger *repositories.LedgerRepository) *FarmerService {
	return &FarmerService{Repo: repo, Ledger: ledger}
}

func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) != 10 {
		return errors.New("phone number must be exactly 10 digits")
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return errors.New("phone number must be exactly 10 digits")
		}
	}
	return nil
}

func (s *FarmerService) CreateFarmer(ctx context.Context, req *models.CreateFarmerRequest) (*models.Farmer, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	farmer := &models.Farmer{
		Name:    req.Name,
		Phone:   req.Phone,
		Village: req.Village,
	}
	if err := s.Repo.Create(ctx, farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

// GetFarmer returns the farmer with balance fields folded from their
// ledger entries.
func (s *FarmerService) GetFarmer(ctx context.Context, id int) (*models.Farmer, error) {
	farmer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	balance, err := s.Ledger.GetEntityBalance(ctx, models.EntityKindFarmer, id)
	if err != nil {
		return nil, err
	}
	farmer.TotalCredit = balance.TotalCredit
	farmer.TotalPaid = balance.TotalPaid
	farmer.Outstanding = balance.Outstanding
	return farmer, nil
}

// ListFarmers returns all farmers sorted by name with balances attached
// from a single bulk ledger query.
func (s *FarmerService) ListFarmers(ctx context.Context) ([]*models.Farmer, error) {
	farmers, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.Ledger.GetAllBalances(ctx, models.EntityKindFarmer)
	if err != nil {
		return nil, err
	}
	for _, f := range farmers {
		if b, ok := balances[f.ID]; ok {
			f.TotalCredit = b.TotalCredit
			f.TotalPaid = b.TotalPaid
			f.Outstanding = b.Outstanding
		}
	}
	return farmers, nil
}

func (s *FarmerService) UpdateFarmer(ctx context.Context, id int, req *models.UpdateFarmerRequest) (*models.Farmer, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	farmer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("farmer not found")
	}
	farmer.Name = req.Name
	farmer.Phone = req.Phone
	farmer.Village = req.Village
	if err := s.Repo.Update(ctx, farmer); err != nil {
		return nil, err
	}
	return s.GetFarmer(ctx, id)
}

// DeleteFarmer removes a farmer. Refused while the farmer still has an
// outstanding balance.
func (s *FarmerService) DeleteFarmer(ctx context.Context, id int) error {
	balance, err := s.Ledger.GetEntityBalance(ctx, models.EntityKindFarmer, id)
	if err != nil {
		return err
	}
	if balance.Outstanding > 0 {
		return errors.New("farmer has an outstanding balance")
	}
	return s.Repo.Delete(ctx, id)
}

// GetLedger returns the farmer's full entry stream, newest first.
func (s *FarmerService) GetLedger(ctx context.Context, id int) ([]models.LedgerEntry, error) {
	return s.Ledger.GetAll(ctx, &models.LedgerFilter{
		EntityKind: models.EntityKindFarmer,
		EntityID:   id,
	})
}
