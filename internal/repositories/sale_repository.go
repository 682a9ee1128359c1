package repositories

import (
	"context"
	"fmt"

	"mango-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SaleStore is the persistence surface the sale service works against.
type SaleStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx SaleTx) error) error
	Get(ctx context.Context, id int) (*models.Sale, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Sale, error)
	List(ctx context.Context, seasonID int) ([]*models.Sale, error)
}

// SaleTx exposes the transactional write operations. Stock reads happen
// inside the transaction so validation and the counter update see the
// same snapshot.
type SaleTx interface {
	GetSale(ctx context.Context, id int) (*models.Sale, error)
	InsertSale(ctx context.Context, s *models.Sale) error
	InsertItems(ctx context.Context, saleID int, items []models.SaleItem) error
	UpdateSale(ctx context.Context, s *models.Sale) error
	DeleteItems(ctx context.Context, saleID int) error
	DeleteSale(ctx context.Context, id int) error
	AvailableStock(ctx context.Context, seasonID int) (map[int]int, error)
	AdjustStock(ctx context.Context, seasonID, packageSizeID, purchasedDelta, soldDelta int) error
	PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error)
	NextInvoiceSeq(ctx context.Context, seasonID int) (int, error)
	MarkEnquiryFulfilled(ctx context.Context, enquiryID int) error
}

type SaleRepository struct {
	Pool *pgxpool.Pool
	DB   DBTX
}

func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{Pool: pool, DB: pool}
}

// WithTx wraps the callback in a repeatable-read transaction.
func (r *SaleRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx SaleTx) error) error {
	return runTx(ctx, r.Pool, func(tx pgx.Tx) error {
		return fn(ctx, &saleTx{
			db:     tx,
			ledger: NewLedgerRepository(tx),
			stock:  NewStockRepository(tx),
		})
	})
}

const saleColumns = `
	s.id, s.customer_id, c.name, s.season_id, s.sale_date, s.invoice_number,
	COALESCE(s.payment_mode, '') as payment_mode, s.payment_status,
	s.total_amount, s.amount_paid, s.delivery_charge,
	COALESCE(s.notes, '') as notes, s.enquiry_id, s.created_at, s.updated_at`

func scanSale(row pgx.Row) (*models.Sale, error) {
	var s models.Sale
	var enquiryID *int
	err := row.Scan(&s.ID, &s.CustomerID, &s.CustomerName, &s.SeasonID, &s.SaleDate,
		&s.InvoiceNumber, &s.PaymentMode, &s.PaymentStatus,
		&s.TotalAmount, &s.AmountPaid, &s.DeliveryCharge,
		&s.Notes, &enquiryID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.EnquiryID = enquiryID
	return &s, nil
}

func (r *SaleRepository) Get(ctx context.Context, id int) (*models.Sale, error) {
	row := r.DB.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1`, saleColumns), id)

	s, err := scanSale(row)
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

func (r *SaleRepository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Sale, error) {
	row := r.DB.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.invoice_number = $1`, saleColumns), invoiceNumber)

	s, err := scanSale(row)
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

func (r *SaleRepository) getItems(ctx context.Context, saleID int) ([]models.SaleItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT si.id, si.sale_id, si.package_size_id, ps.name,
			si.quantity, si.rate_per_dozen, si.buying_rate, si.total
		FROM sale_items si
		JOIN package_sizes ps ON ps.id = si.package_size_id
		WHERE si.sale_id = $1
		ORDER BY si.id ASC`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.SaleItem
	for rows.Next() {
		var it models.SaleItem
		err := rows.Scan(&it.ID, &it.SaleID, &it.PackageSizeID, &it.PackageSizeName,
			&it.Quantity, &it.RatePerDozen, &it.BuyingRate, &it.Total)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// List returns sales for a season, newest first, items included.
func (r *SaleRepository) List(ctx context.Context, seasonID int) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.season_id = $1
		ORDER BY s.sale_date DESC, s.id DESC`, saleColumns), seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	rows.Close()

	for _, s := range sales {
		items, err := r.getItems(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return sales, nil
}

// saleTx implements SaleTx over a live transaction.
type saleTx struct {
	db     pgx.Tx
	ledger *LedgerRepository
	stock  *StockRepository
}

// GetSale locks and returns the sale row with items, for edit/delete.
func (t *saleTx) GetSale(ctx context.Context, id int) (*models.Sale, error) {
	row := t.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1
		FOR UPDATE OF s`, saleColumns), id)

	s, err := scanSale(row)
	if err != nil {
		return nil, err
	}

	rows, err := t.db.Query(ctx, `
		SELECT si.id, si.sale_id, si.package_size_id, ps.name,
			si.quantity, si.rate_per_dozen, si.buying_rate, si.total
		FROM sale_items si
		JOIN package_sizes ps ON ps.id = si.package_size_id
		WHERE si.sale_id = $1
		ORDER BY si.id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.SaleItem
		err := rows.Scan(&it.ID, &it.SaleID, &it.PackageSizeID, &it.PackageSizeName,
			&it.Quantity, &it.RatePerDozen, &it.BuyingRate, &it.Total)
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	return s, nil
}

func (t *saleTx) InsertSale(ctx context.Context, s *models.Sale) error {
	err := t.db.QueryRow(ctx, `
		INSERT INTO sales (customer_id, season_id, sale_date, invoice_number, payment_mode,
			payment_status, total_amount, amount_paid, delivery_charge, notes, enquiry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		s.CustomerID, s.SeasonID, s.SaleDate, s.InvoiceNumber, s.PaymentMode,
		s.PaymentStatus, s.TotalAmount, s.AmountPaid, s.DeliveryCharge, s.Notes, s.EnquiryID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

func (t *saleTx) InsertItems(ctx context.Context, saleID int, items []models.SaleItem) error {
	for i := range items {
		it := &items[i]
		err := t.db.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, package_size_id, quantity, rate_per_dozen, buying_rate, total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			saleID, it.PackageSizeID, it.Quantity, it.RatePerDozen, it.BuyingRate, it.Total,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("failed to insert sale item: %w", err)
		}
		it.SaleID = saleID
	}
	return nil
}

func (t *saleTx) UpdateSale(ctx context.Context, s *models.Sale) error {
	_, err := t.db.Exec(ctx, `
		UPDATE sales SET customer_id=$1, sale_date=$2, payment_mode=$3, payment_status=$4,
			total_amount=$5, amount_paid=$6, delivery_charge=$7, notes=$8,
			updated_at=CURRENT_TIMESTAMP
		WHERE id=$9`,
		s.CustomerID, s.SaleDate, s.PaymentMode, s.PaymentStatus,
		s.TotalAmount, s.AmountPaid, s.DeliveryCharge, s.Notes, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	return nil
}

func (t *saleTx) DeleteItems(ctx context.Context, saleID int) error {
	_, err := t.db.Exec(ctx, `DELETE FROM sale_items WHERE sale_id=$1`, saleID)
	return err
}

func (t *saleTx) DeleteSale(ctx context.Context, id int) error {
	_, err := t.db.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	return err
}

func (t *saleTx) AvailableStock(ctx context.Context, seasonID int) (map[int]int, error) {
	return t.stock.Available(ctx, seasonID)
}

func (t *saleTx) AdjustStock(ctx context.Context, seasonID, packageSizeID, purchasedDelta, soldDelta int) error {
	return t.stock.Adjust(ctx, seasonID, packageSizeID, purchasedDelta, soldDelta)
}

func (t *saleTx) PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	return t.ledger.Create(ctx, entry)
}

// NextInvoiceSeq bumps and returns the per-season invoice counter.
func (t *saleTx) NextInvoiceSeq(ctx context.Context, seasonID int) (int, error) {
	var seq int
	err := t.db.QueryRow(ctx, `
		INSERT INTO invoice_seqs (season_id, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (season_id)
		DO UPDATE SET last_seq = invoice_seqs.last_seq + 1
		RETURNING last_seq`, seasonID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}
	return seq, nil
}

func (t *saleTx) MarkEnquiryFulfilled(ctx context.Context, enquiryID int) error {
	_, err := t.db.Exec(ctx, `
		UPDATE enquiries SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		models.EnquiryStatusFulfilled, enquiryID)
	return err
}
