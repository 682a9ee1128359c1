package repositories

import (
	"context"

	"mango-backend/internal/models"
)

type FarmerRepository struct {
	DB DBTX
}

func NewFarmerRepository(db DBTX) *FarmerRepository {
	return &FarmerRepository{DB: db}
}

func (r *FarmerRepository) Create(ctx context.Context, f *models.Farmer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO farmers(name, phone, village)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		f.Name, f.Phone, f.Village,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *FarmerRepository) Get(ctx context.Context, id int) (*models.Farmer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(phone, '') as phone, COALESCE(village, '') as village, created_at, updated_at
         FROM farmers WHERE id=$1`, id)

	var farmer models.Farmer
	err := row.Scan(&farmer.ID, &farmer.Name, &farmer.Phone, &farmer.Village,
		&farmer.CreatedAt, &farmer.UpdatedAt)
	return &farmer, err
}

// List returns all farmers sorted by name, case-insensitive.
func (r *FarmerRepository) List(ctx context.Context) ([]*models.Farmer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(phone, '') as phone, COALESCE(village, '') as village, created_at, updated_at
         FROM farmers ORDER BY LOWER(name) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var farmers []*models.Farmer
	for rows.Next() {
		var farmer models.Farmer
		err := rows.Scan(&farmer.ID, &farmer.Name, &farmer.Phone, &farmer.Village,
			&farmer.CreatedAt, &farmer.UpdatedAt)
		if err != nil {
			return nil, err
		}
		farmers = append(farmers, &farmer)
	}
	return farmers, nil
}

func (r *FarmerRepository) Update(ctx context.Context, f *models.Farmer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE farmers SET name=$1, phone=$2, village=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		f.Name, f.Phone, f.Village, f.ID)
	return err
}

func (r *FarmerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM farmers WHERE id=$1`, id)
	return err
}
