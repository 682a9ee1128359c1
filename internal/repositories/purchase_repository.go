package repositories

import (
	"context"
	"fmt"

	"mango-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PurchaseStore is the persistence surface the purchase service works
// against. Every multi-step mutation runs through WithTx so the parent
// row, item rows, ledger postings and stock counters commit together.
type PurchaseStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx PurchaseTx) error) error
	Get(ctx context.Context, id int) (*models.Purchase, error)
	List(ctx context.Context, seasonID int) ([]*models.Purchase, error)
	LatestRate(ctx context.Context, seasonID, packageSizeID int) (float64, bool, error)
}

// PurchaseTx exposes the transactional write operations.
type PurchaseTx interface {
	InsertPurchase(ctx context.Context, p *models.Purchase) error
	InsertItems(ctx context.Context, purchaseID int, items []models.PurchaseItem) error
	UpdatePurchase(ctx context.Context, p *models.Purchase) error
	DeleteItems(ctx context.Context, purchaseID int) error
	DeletePurchase(ctx context.Context, id int) error
	PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error)
	AdjustStock(ctx context.Context, seasonID, packageSizeID, purchasedDelta, soldDelta int) error
}

type PurchaseRepository struct {
	Pool *pgxpool.Pool
	DB   DBTX
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{Pool: pool, DB: pool}
}

// WithTx wraps the callback in a repeatable-read transaction.
func (r *PurchaseRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx PurchaseTx) error) error {
	return runTx(ctx, r.Pool, func(tx pgx.Tx) error {
		return fn(ctx, &purchaseTx{
			db:     tx,
			ledger: NewLedgerRepository(tx),
			stock:  NewStockRepository(tx),
		})
	})
}

func (r *PurchaseRepository) Get(ctx context.Context, id int) (*models.Purchase, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT p.id, p.farmer_id, f.name, p.season_id, p.purchase_date,
			p.total_amount, COALESCE(p.notes, '') as notes, p.created_at, p.updated_at
		FROM purchases p
		JOIN farmers f ON f.id = p.farmer_id
		WHERE p.id = $1`, id)

	var p models.Purchase
	err := row.Scan(&p.ID, &p.FarmerID, &p.FarmerName, &p.SeasonID, &p.PurchaseDate,
		&p.TotalAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

func (r *PurchaseRepository) getItems(ctx context.Context, purchaseID int) ([]models.PurchaseItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT pi.id, pi.purchase_id, pi.package_size_id, ps.name,
			pi.quantity, pi.rate_per_unit, pi.total
		FROM purchase_items pi
		JOIN package_sizes ps ON ps.id = pi.package_size_id
		WHERE pi.purchase_id = $1
		ORDER BY pi.id ASC`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PurchaseItem
	for rows.Next() {
		var it models.PurchaseItem
		err := rows.Scan(&it.ID, &it.PurchaseID, &it.PackageSizeID, &it.PackageSizeName,
			&it.Quantity, &it.RatePerUnit, &it.Total)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// List returns purchases for a season, newest first, items included.
func (r *PurchaseRepository) List(ctx context.Context, seasonID int) ([]*models.Purchase, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.farmer_id, f.name, p.season_id, p.purchase_date,
			p.total_amount, COALESCE(p.notes, '') as notes, p.created_at, p.updated_at
		FROM purchases p
		JOIN farmers f ON f.id = p.farmer_id
		WHERE p.season_id = $1
		ORDER BY p.purchase_date DESC, p.id DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		var p models.Purchase
		err := rows.Scan(&p.ID, &p.FarmerID, &p.FarmerName, &p.SeasonID, &p.PurchaseDate,
			&p.TotalAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, &p)
	}

	for _, p := range purchases {
		items, err := r.getItems(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Items = items
	}
	return purchases, nil
}

// LatestRate returns the rate from the most recently created matching
// purchase item in the season. Creation order, not purchase date; ties
// break by insertion order (highest id wins).
func (r *PurchaseRepository) LatestRate(ctx context.Context, seasonID, packageSizeID int) (float64, bool, error) {
	var rate float64
	err := r.DB.QueryRow(ctx, `
		SELECT pi.rate_per_unit
		FROM purchase_items pi
		JOIN purchases p ON p.id = pi.purchase_id
		WHERE p.season_id = $1 AND pi.package_size_id = $2
		ORDER BY pi.id DESC
		LIMIT 1`, seasonID, packageSizeID).Scan(&rate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return rate, true, nil
}

// purchaseTx implements PurchaseTx over a live transaction.
type purchaseTx struct {
	db     pgx.Tx
	ledger *LedgerRepository
	stock  *StockRepository
}

func (t *purchaseTx) InsertPurchase(ctx context.Context, p *models.Purchase) error {
	err := t.db.QueryRow(ctx, `
		INSERT INTO purchases (farmer_id, season_id, purchase_date, total_amount, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		p.FarmerID, p.SeasonID, p.PurchaseDate, p.TotalAmount, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	return nil
}

func (t *purchaseTx) InsertItems(ctx context.Context, purchaseID int, items []models.PurchaseItem) error {
	for i := range items {
		it := &items[i]
		err := t.db.QueryRow(ctx, `
			INSERT INTO purchase_items (purchase_id, package_size_id, quantity, rate_per_unit, total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			purchaseID, it.PackageSizeID, it.Quantity, it.RatePerUnit, it.Total,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("failed to insert purchase item: %w", err)
		}
		it.PurchaseID = purchaseID
	}
	return nil
}

func (t *purchaseTx) UpdatePurchase(ctx context.Context, p *models.Purchase) error {
	_, err := t.db.Exec(ctx, `
		UPDATE purchases SET farmer_id=$1, purchase_date=$2, total_amount=$3, notes=$4,
			updated_at=CURRENT_TIMESTAMP
		WHERE id=$5`,
		p.FarmerID, p.PurchaseDate, p.TotalAmount, p.Notes, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update purchase: %w", err)
	}
	return nil
}

func (t *purchaseTx) DeleteItems(ctx context.Context, purchaseID int) error {
	_, err := t.db.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id=$1`, purchaseID)
	return err
}

func (t *purchaseTx) DeletePurchase(ctx context.Context, id int) error {
	_, err := t.db.Exec(ctx, `DELETE FROM purchases WHERE id=$1`, id)
	return err
}

func (t *purchaseTx) PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	return t.ledger.Create(ctx, entry)
}

func (t *purchaseTx) AdjustStock(ctx context.Context, seasonID, packageSizeID, purchasedDelta, soldDelta int) error {
	return t.stock.Adjust(ctx, seasonID, packageSizeID, purchasedDelta, soldDelta)
}
