package services

import (
	"context"
	"errors"

	"mango-backend/internal/auth"
	"mango-backend/internal/cache"
	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

// defaultPIN seeds fresh installs; the operator is expected to change it.
const defaultPIN = "1234"

// AuthService gates the whole application behind one shared PIN stored
// as a setting. A successful check issues a JWT session token.
type AuthService struct {
	Settings *repositories.SettingRepository
	JWT      *auth.JWTManager
}

func NewAuthService(settings *repositories.SettingRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{Settings: settings, JWT: jwtManager}
}

func (s *AuthService) storedPIN(ctx context.Context) string {
	setting, err := s.Settings.Get(ctx, models.SettingKeyAppPIN)
	if err != nil || setting == nil || setting.Value == "" {
		return defaultPIN
	}
	return setting.Value
}

// Login verifies the PIN and returns a session token.
func (s *AuthService) Login(ctx context.Context, pin string) (string, error) {
	if !auth.VerifyPIN(s.storedPIN(ctx), pin) {
		return "", errors.New("incorrect PIN")
	}
	return s.JWT.GenerateToken()
}

// ChangePIN replaces the shared PIN. The new value is stored bcrypt
// hashed, replacing the seeded plain-text default.
func (s *AuthService) ChangePIN(ctx context.Context, currentPIN, newPIN string) error {
	if !auth.VerifyPIN(s.storedPIN(ctx), currentPIN) {
		return errors.New("incorrect PIN")
	}
	if len(newPIN) < 4 {
		return errors.New("PIN must be at least 4 digits")
	}
	for _, c := range newPIN {
		if c < '0' || c > '9' {
			return errors.New("PIN must be numeric")
		}
	}

	hash, err := auth.HashPIN(newPIN)
	if err != nil {
		return err
	}
	if err := s.Settings.Set(ctx, models.SettingKeyAppPIN, hash); err != nil {
		return err
	}
	cache.InvalidateSettingCaches(ctx)
	return nil
}
