package repositories

import (
	"context"
	"fmt"

	"mango-backend/internal/models"
)

type StockRepository struct {
	DB DBTX
}

func NewStockRepository(db DBTX) *StockRepository {
	return &StockRepository{DB: db}
}

// Adjust moves the incremental per-package counters for a season. Called
// inside the same transaction as the purchase or sale that moves them.
func (r *StockRepository) Adjust(ctx context.Context, seasonID, packageSizeID, purchasedDelta, soldDelta int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO stock_levels (season_id, package_size_id, purchased_qty, sold_qty)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (season_id, package_size_id)
		DO UPDATE SET purchased_qty = stock_levels.purchased_qty + $3,
		              sold_qty = stock_levels.sold_qty + $4
	`, seasonID, packageSizeID, purchasedDelta, soldDelta)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	return nil
}

// GetBySeason returns the stock counters for every package size in a
// season, including sizes with no movement yet.
func (r *StockRepository) GetBySeason(ctx context.Context, seasonID int) ([]models.StockLevel, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ps.id, ps.name, COALESCE(sl.purchased_qty, 0), COALESCE(sl.sold_qty, 0)
		FROM package_sizes ps
		LEFT JOIN stock_levels sl ON sl.package_size_id = ps.id AND sl.season_id = $1
		WHERE ps.is_active = true
		ORDER BY LOWER(ps.name) ASC
	`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []models.StockLevel
	for rows.Next() {
		l := models.StockLevel{SeasonID: seasonID}
		if err := rows.Scan(&l.PackageSizeID, &l.PackageSizeName, &l.Purchased, &l.Sold); err != nil {
			return nil, err
		}
		l.Available = l.Purchased - l.Sold
		levels = append(levels, l)
	}
	return levels, nil
}

// Available returns purchased-minus-sold per package size for a season.
func (r *StockRepository) Available(ctx context.Context, seasonID int) (map[int]int, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT package_size_id, purchased_qty - sold_qty
		FROM stock_levels
		WHERE season_id = $1
	`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]int)
	for rows.Next() {
		var pkgID, avail int
		if err := rows.Scan(&pkgID, &avail); err != nil {
			return nil, err
		}
		result[pkgID] = avail
	}
	return result, nil
}

// ScanTotals computes purchased and sold quantities per package size
// from a full scan of item rows, bypassing the counters. Used to verify
// the incremental counters.
func (r *StockRepository) ScanTotals(ctx context.Context, seasonID int) (map[int]models.StockLevel, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ids.package_size_id,
			COALESCE((SELECT SUM(pi.quantity) FROM purchase_items pi
				JOIN purchases p ON p.id = pi.purchase_id
				WHERE p.season_id = $1 AND pi.package_size_id = ids.package_size_id), 0),
			COALESCE((SELECT SUM(si.quantity) FROM sale_items si
				JOIN sales s ON s.id = si.sale_id
				WHERE s.season_id = $1 AND si.package_size_id = ids.package_size_id), 0)
		FROM (
			SELECT pi.package_size_id FROM purchase_items pi
				JOIN purchases p ON p.id = pi.purchase_id WHERE p.season_id = $1
			UNION
			SELECT si.package_size_id FROM sale_items si
				JOIN sales s ON s.id = si.sale_id WHERE s.season_id = $1
		) ids
	`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]models.StockLevel)
	for rows.Next() {
		l := models.StockLevel{SeasonID: seasonID}
		if err := rows.Scan(&l.PackageSizeID, &l.Purchased, &l.Sold); err != nil {
			return nil, err
		}
		l.Available = l.Purchased - l.Sold
		result[l.PackageSizeID] = l
	}
	return result, nil
}

// RecomputeFromItems rebuilds a season's counters from a full scan of
// purchase and sale items. Retained as a consistency check against the
// incremental counters.
func (r *StockRepository) RecomputeFromItems(ctx context.Context, seasonID int) error {
	_, err := r.DB.Exec(ctx, `
		DELETE FROM stock_levels WHERE season_id = $1
	`, seasonID)
	if err != nil {
		return fmt.Errorf("failed to reset stock levels: %w", err)
	}

	_, err = r.DB.Exec(ctx, `
		INSERT INTO stock_levels (season_id, package_size_id, purchased_qty, sold_qty)
		SELECT $1, ids.package_size_id,
			COALESCE((SELECT SUM(pi.quantity) FROM purchase_items pi
				JOIN purchases p ON p.id = pi.purchase_id
				WHERE p.season_id = $1 AND pi.package_size_id = ids.package_size_id), 0),
			COALESCE((SELECT SUM(si.quantity) FROM sale_items si
				JOIN sales s ON s.id = si.sale_id
				WHERE s.season_id = $1 AND si.package_size_id = ids.package_size_id), 0)
		FROM (
			SELECT pi.package_size_id FROM purchase_items pi
				JOIN purchases p ON p.id = pi.purchase_id WHERE p.season_id = $1
			UNION
			SELECT si.package_size_id FROM sale_items si
				JOIN sales s ON s.id = si.sale_id WHERE s.season_id = $1
		) ids
	`, seasonID)
	if err != nil {
		return fmt.Errorf("failed to recompute stock levels: %w", err)
	}
	return nil
}
