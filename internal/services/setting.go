package services

import (
	"context"
	"errors"

	"mango-backend/internal/cache"
	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

type SettingService struct {
	Repo *repositories.SettingRepository
}

func NewSettingService(repo *repositories.SettingRepository) *SettingService {
	return &SettingService{Repo: repo}
}

func (s *SettingService) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	return s.Repo.Get(ctx, key)
}

// ListSettings returns all settings with the PIN value masked.
func (s *SettingService) ListSettings(ctx context.Context) ([]*models.Setting, error) {
	settings, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, setting := range settings {
		if setting.Key == models.SettingKeyAppPIN {
			setting.Value = "****"
		}
	}
	return settings, nil
}

func (s *SettingService) UpdateSetting(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("setting key is required")
	}
	if key == models.SettingKeyAppPIN {
		return errors.New("use the change-pin endpoint to update the PIN")
	}
	if err := s.Repo.Set(ctx, key, value); err != nil {
		return err
	}
	cache.InvalidateSettingCaches(ctx)
	return nil
}
