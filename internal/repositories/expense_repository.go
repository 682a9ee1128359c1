package repositories

import (
	"context"

	"mango-backend/internal/models"
)

type ExpenseRepository struct {
	DB DBTX
}

func NewExpenseRepository(db DBTX) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO expenses(season_id, category, description, amount, expense_date)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		e.SeasonID, e.Category, e.Description, e.Amount, e.ExpenseDate,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *ExpenseRepository) Get(ctx context.Context, id int) (*models.Expense, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, season_id, category, COALESCE(description, '') as description, amount, expense_date, created_at
         FROM expenses WHERE id=$1`, id)

	var e models.Expense
	err := row.Scan(&e.ID, &e.SeasonID, &e.Category, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedAt)
	return &e, err
}

func (r *ExpenseRepository) List(ctx context.Context, seasonID int) ([]*models.Expense, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, season_id, category, COALESCE(description, '') as description, amount, expense_date, created_at
         FROM expenses WHERE season_id=$1 ORDER BY expense_date DESC, id DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		err := rows.Scan(&e.ID, &e.SeasonID, &e.Category, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}
	return expenses, nil
}

// TotalsByCategory sums a season's expenses per category.
func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, seasonID int) (map[string]float64, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT category, COALESCE(SUM(amount), 0) FROM expenses WHERE season_id=$1 GROUP BY category`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		totals[category] = total
	}
	return totals, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE expenses SET category=$1, description=$2, amount=$3, expense_date=$4
         WHERE id=$5`,
		e.Category, e.Description, e.Amount, e.ExpenseDate, e.ID)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	return err
}
