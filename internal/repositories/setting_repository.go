package repositories

import (
	"context"

	"mango-backend/internal/models"
)

type SettingRepository struct {
	DB DBTX
}

func NewSettingRepository(db DBTX) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT key, value, updated_at FROM settings WHERE key=$1`, key)

	var s models.Setting
	err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return &s, err
}

func (r *SettingRepository) List(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT key, value, updated_at FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, nil
}

func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}
