package services

import (
	"context"
	"errors"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"
)

type SeasonService struct {
	Store repositories.SeasonStore
}

func NewSeasonService(store repositories.SeasonStore) *SeasonService {
	return &SeasonService{Store: store}
}

// StartSeason creates a season and makes it the active one. Every other
// season is deactivated in the same transaction, so exactly one season
// is active at any time.
func (s *SeasonService) StartSeason(ctx context.Context, req *models.CreateSeasonRequest) (*models.Season, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	startDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.StartDate)
	if err != nil {
		return nil, errors.New("start date must be YYYY-MM-DD")
	}
	endDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.EndDate)
	if err != nil {
		return nil, errors.New("end date must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, errors.New("end date cannot be before start date")
	}

	season := &models.Season{
		Name:       req.Name,
		StartDate:  startDate,
		EndDate:    endDate,
		RentAmount: req.RentAmount,
		IsActive:   true,
	}
	err = s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.SeasonTx) error {
		if err := tx.DeactivateAll(ctx); err != nil {
			return err
		}
		return tx.InsertSeason(ctx, season)
	})
	if err != nil {
		return nil, err
	}
	return season, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, id int) (*models.Season, error) {
	return s.Store.Get(ctx, id)
}

// ActiveSeason returns the single active season, or an error when no
// season has been started yet.
func (s *SeasonService) ActiveSeason(ctx context.Context) (*models.Season, error) {
	season, err := s.Store.GetActive(ctx)
	if err != nil {
		return nil, errors.New("no active season; start a season first")
	}
	return season, nil
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	return s.Store.List(ctx)
}

// ActivateSeason switches the active flag to an existing season. The
// deactivate-all/activate pair runs in one transaction.
func (s *SeasonService) ActivateSeason(ctx context.Context, id int) (*models.Season, error) {
	if _, err := s.Store.Get(ctx, id); err != nil {
		return nil, errors.New("season not found")
	}
	err := s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.SeasonTx) error {
		if err := tx.DeactivateAll(ctx); err != nil {
			return err
		}
		return tx.ActivateSeason(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

func (s *SeasonService) UpdateSeason(ctx context.Context, id int, req *models.UpdateSeasonRequest) (*models.Season, error) {
	season, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, errors.New("season not found")
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	startDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.StartDate)
	if err != nil {
		return nil, errors.New("start date must be YYYY-MM-DD")
	}
	endDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.EndDate)
	if err != nil {
		return nil, errors.New("end date must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, errors.New("end date cannot be before start date")
	}

	season.Name = req.Name
	season.StartDate = startDate
	season.EndDate = endDate
	season.RentAmount = req.RentAmount
	season.RentPaid = req.RentPaid
	if err := s.Store.Update(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

// DeleteSeason removes a season. The active season cannot be deleted.
func (s *SeasonService) DeleteSeason(ctx context.Context, id int) error {
	season, err := s.Store.Get(ctx, id)
	if err != nil {
		return errors.New("season not found")
	}
	if season.IsActive {
		return errors.New("cannot delete the active season")
	}
	return s.Store.Delete(ctx, id)
}
