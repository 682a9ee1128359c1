package repositories

import (
	"context"
	"fmt"

	"mango-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeasonStore is the persistence surface the season service works
// against. Activation spans multiple statements, so writes that touch
// the active flag go through a transaction.
type SeasonStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx SeasonTx) error) error
	Get(ctx context.Context, id int) (*models.Season, error)
	GetActive(ctx context.Context) (*models.Season, error)
	List(ctx context.Context) ([]*models.Season, error)
	Update(ctx context.Context, s *models.Season) error
	Delete(ctx context.Context, id int) error
}

// SeasonTx exposes the transactional writes behind activation. The
// deactivate-all/activate pair commits atomically, so there is never a
// window with zero or two active seasons.
type SeasonTx interface {
	DeactivateAll(ctx context.Context) error
	InsertSeason(ctx context.Context, s *models.Season) error
	ActivateSeason(ctx context.Context, id int) error
}

type SeasonRepository struct {
	Pool *pgxpool.Pool
	DB   DBTX
}

func NewSeasonRepository(pool *pgxpool.Pool) *SeasonRepository {
	return &SeasonRepository{Pool: pool, DB: pool}
}

func (r *SeasonRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx SeasonTx) error) error {
	return runTx(ctx, r.Pool, func(tx pgx.Tx) error {
		return fn(ctx, &seasonTx{db: tx})
	})
}

func (r *SeasonRepository) Get(ctx context.Context, id int) (*models.Season, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, start_date, end_date, rent_amount, rent_paid, is_active, created_at
         FROM seasons WHERE id=$1`, id)

	var season models.Season
	err := row.Scan(&season.ID, &season.Name, &season.StartDate, &season.EndDate,
		&season.RentAmount, &season.RentPaid, &season.IsActive, &season.CreatedAt)
	return &season, err
}

// GetActive returns the single active season, or pgx.ErrNoRows.
func (r *SeasonRepository) GetActive(ctx context.Context) (*models.Season, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, start_date, end_date, rent_amount, rent_paid, is_active, created_at
         FROM seasons WHERE is_active = true LIMIT 1`)

	var season models.Season
	err := row.Scan(&season.ID, &season.Name, &season.StartDate, &season.EndDate,
		&season.RentAmount, &season.RentPaid, &season.IsActive, &season.CreatedAt)
	return &season, err
}

func (r *SeasonRepository) List(ctx context.Context) ([]*models.Season, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, start_date, end_date, rent_amount, rent_paid, is_active, created_at
         FROM seasons ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		var season models.Season
		err := rows.Scan(&season.ID, &season.Name, &season.StartDate, &season.EndDate,
			&season.RentAmount, &season.RentPaid, &season.IsActive, &season.CreatedAt)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, &season)
	}
	return seasons, nil
}

func (r *SeasonRepository) Update(ctx context.Context, s *models.Season) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE seasons SET name=$1, start_date=$2, end_date=$3, rent_amount=$4, rent_paid=$5
         WHERE id=$6`,
		s.Name, s.StartDate, s.EndDate, s.RentAmount, s.RentPaid, s.ID)
	return err
}

func (r *SeasonRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM seasons WHERE id=$1`, id)
	return err
}

type seasonTx struct {
	db pgx.Tx
}

func (t *seasonTx) DeactivateAll(ctx context.Context) error {
	if _, err := t.db.Exec(ctx, `UPDATE seasons SET is_active = false WHERE is_active = true`); err != nil {
		return fmt.Errorf("failed to deactivate seasons: %w", err)
	}
	return nil
}

func (t *seasonTx) InsertSeason(ctx context.Context, s *models.Season) error {
	return t.db.QueryRow(ctx,
		`INSERT INTO seasons(name, start_date, end_date, rent_amount, rent_paid, is_active)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		s.Name, s.StartDate, s.EndDate, s.RentAmount, s.RentPaid, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt)
}

func (t *seasonTx) ActivateSeason(ctx context.Context, id int) error {
	tag, err := t.db.Exec(ctx, `UPDATE seasons SET is_active = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to activate season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
