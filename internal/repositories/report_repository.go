package repositories

import (
	"context"
	"time"
)

// ReportRepository holds the aggregate queries behind the season report
// and dashboard. Read-only.
type ReportRepository struct {
	DB DBTX
}

func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{DB: db}
}

// SalesTotals returns revenue (sale totals, delivery charges included)
// and sale count for a season.
func (r *ReportRepository) SalesTotals(ctx context.Context, seasonID int) (float64, int, error) {
	var total float64
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM sales WHERE season_id=$1`,
		seasonID).Scan(&total, &count)
	return total, count, err
}

// PurchaseTotals returns purchase cost and purchase count for a season.
func (r *ReportRepository) PurchaseTotals(ctx context.Context, seasonID int) (float64, int, error) {
	var total float64
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM purchases WHERE season_id=$1`,
		seasonID).Scan(&total, &count)
	return total, count, err
}

// ExpenseTotal returns the summed expenses for a season.
func (r *ReportRepository) ExpenseTotal(ctx context.Context, seasonID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE season_id=$1`,
		seasonID).Scan(&total)
	return total, err
}

// SalesTotalForDate returns the value sold on one calendar day.
func (r *ReportRepository) SalesTotalForDate(ctx context.Context, seasonID int, date time.Time) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE season_id=$1 AND sale_date=$2`,
		seasonID, date).Scan(&total)
	return total, err
}

// PurchaseTotalForDate returns the value purchased on one calendar day.
func (r *ReportRepository) PurchaseTotalForDate(ctx context.Context, seasonID int, date time.Time) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM purchases WHERE season_id=$1 AND purchase_date=$2`,
		seasonID, date).Scan(&total)
	return total, err
}
