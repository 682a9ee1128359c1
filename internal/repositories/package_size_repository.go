package repositories

import (
	"context"

	"mango-backend/internal/models"
)

type PackageSizeRepository struct {
	DB DBTX
}

func NewPackageSizeRepository(db DBTX) *PackageSizeRepository {
	return &PackageSizeRepository{DB: db}
}

func (r *PackageSizeRepository) Create(ctx context.Context, p *models.PackageSize) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO package_sizes(name, pieces_per_box, transport_cost, is_active)
         VALUES($1, $2, $3, true)
         RETURNING id, created_at`,
		p.Name, p.PiecesPerBox, p.TransportCost,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PackageSizeRepository) Get(ctx context.Context, id int) (*models.PackageSize, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, pieces_per_box, transport_cost, is_active, created_at
         FROM package_sizes WHERE id=$1`, id)

	var p models.PackageSize
	err := row.Scan(&p.ID, &p.Name, &p.PiecesPerBox, &p.TransportCost, &p.IsActive, &p.CreatedAt)
	return &p, err
}

func (r *PackageSizeRepository) List(ctx context.Context, activeOnly bool) ([]*models.PackageSize, error) {
	query := `SELECT id, name, pieces_per_box, transport_cost, is_active, created_at
         FROM package_sizes ORDER BY LOWER(name) ASC`
	if activeOnly {
		query = `SELECT id, name, pieces_per_box, transport_cost, is_active, created_at
         FROM package_sizes WHERE is_active = true ORDER BY LOWER(name) ASC`
	}

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []*models.PackageSize
	for rows.Next() {
		var p models.PackageSize
		err := rows.Scan(&p.ID, &p.Name, &p.PiecesPerBox, &p.TransportCost, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, &p)
	}
	return sizes, nil
}

func (r *PackageSizeRepository) Update(ctx context.Context, p *models.PackageSize) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE package_sizes SET name=$1, pieces_per_box=$2, transport_cost=$3, is_active=$4
         WHERE id=$5`,
		p.Name, p.PiecesPerBox, p.TransportCost, p.IsActive, p.ID)
	return err
}

func (r *PackageSizeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM package_sizes WHERE id=$1`, id)
	return err
}
