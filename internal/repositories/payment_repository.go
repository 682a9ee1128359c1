package repositories

import (
	"context"
	"fmt"

	"mango-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentStore is the persistence surface the payment service works
// against. Payments are append-only: there is no update or delete.
type PaymentStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx PaymentTx) error) error
	Get(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context, seasonID int, entityKind string, entityID int) ([]*models.Payment, error)
}

// PaymentTx exposes the transactional write operations.
type PaymentTx interface {
	InsertPayment(ctx context.Context, p *models.Payment) error
	PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error)
}

type PaymentRepository struct {
	Pool *pgxpool.Pool
	DB   DBTX
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{Pool: pool, DB: pool}
}

func (r *PaymentRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx PaymentTx) error) error {
	return runTx(ctx, r.Pool, func(tx pgx.Tx) error {
		return fn(ctx, &paymentTx{db: tx, ledger: NewLedgerRepository(tx)})
	})
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT p.id, p.entity_kind, p.entity_id, p.season_id, p.amount, p.payment_date,
			COALESCE(p.mode, '') as mode, COALESCE(p.notes, '') as notes, p.created_at,
			CASE p.entity_kind
				WHEN 'farmer' THEN (SELECT name FROM farmers WHERE id = p.entity_id)
				ELSE (SELECT name FROM customers WHERE id = p.entity_id)
			END as entity_name
		FROM payments p WHERE p.id = $1`, id)

	var p models.Payment
	var entityName *string
	err := row.Scan(&p.ID, &p.EntityKind, &p.EntityID, &p.SeasonID, &p.Amount, &p.PaymentDate,
		&p.Mode, &p.Notes, &p.CreatedAt, &entityName)
	if err != nil {
		return nil, err
	}
	if entityName != nil {
		p.EntityName = *entityName
	}
	return &p, nil
}

// List returns payments newest first, optionally filtered by season and
// by the entity they settle against.
func (r *PaymentRepository) List(ctx context.Context, seasonID int, entityKind string, entityID int) ([]*models.Payment, error) {
	query := `
		SELECT p.id, p.entity_kind, p.entity_id, p.season_id, p.amount, p.payment_date,
			COALESCE(p.mode, '') as mode, COALESCE(p.notes, '') as notes, p.created_at,
			CASE p.entity_kind
				WHEN 'farmer' THEN (SELECT name FROM farmers WHERE id = p.entity_id)
				ELSE (SELECT name FROM customers WHERE id = p.entity_id)
			END as entity_name
		FROM payments p
		WHERE ($1 = 0 OR p.season_id = $1)
			AND ($2 = '' OR p.entity_kind = $2)
			AND ($3 = 0 OR p.entity_id = $3)
		ORDER BY p.payment_date DESC, p.id DESC`

	rows, err := r.DB.Query(ctx, query, seasonID, entityKind, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		var entityName *string
		err := rows.Scan(&p.ID, &p.EntityKind, &p.EntityID, &p.SeasonID, &p.Amount, &p.PaymentDate,
			&p.Mode, &p.Notes, &p.CreatedAt, &entityName)
		if err != nil {
			return nil, err
		}
		if entityName != nil {
			p.EntityName = *entityName
		}
		payments = append(payments, &p)
	}
	return payments, nil
}

type paymentTx struct {
	db     pgx.Tx
	ledger *LedgerRepository
}

func (t *paymentTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	err := t.db.QueryRow(ctx, `
		INSERT INTO payments (entity_kind, entity_id, season_id, amount, payment_date, mode, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		p.EntityKind, p.EntityID, p.SeasonID, p.Amount, p.PaymentDate, p.Mode, p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (t *paymentTx) PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	return t.ledger.Create(ctx, entry)
}
