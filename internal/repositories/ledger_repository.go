package repositories

import (
	"context"
	"fmt"
	"strings"

	"mango-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type LedgerRepository struct {
	DB DBTX
}

func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// Create appends a new ledger entry and calculates the running balance
func (r *LedgerRepository) Create(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	// Get current balance for entity
	currentBalance, err := r.GetBalance(ctx, entry.EntityKind, entry.EntityID)
	if err != nil {
		currentBalance = 0 // First entry for this entity
	}

	runningBalance := currentBalance + entry.Debit - entry.Credit

	query := `
		INSERT INTO ledger_entries (
			entity_kind, entity_id, season_id, entry_type, description,
			debit, credit, running_balance, reference_id, reference_type, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	out := &models.LedgerEntry{
		EntityKind:     entry.EntityKind,
		EntityID:       entry.EntityID,
		SeasonID:       entry.SeasonID,
		EntryType:      entry.EntryType,
		Description:    entry.Description,
		Debit:          entry.Debit,
		Credit:         entry.Credit,
		RunningBalance: runningBalance,
		ReferenceID:    entry.ReferenceID,
		ReferenceType:  entry.ReferenceType,
		Notes:          entry.Notes,
	}

	err = r.DB.QueryRow(ctx, query,
		entry.EntityKind,
		entry.EntityID,
		entry.SeasonID,
		entry.EntryType,
		entry.Description,
		entry.Debit,
		entry.Credit,
		runningBalance,
		entry.ReferenceID,
		entry.ReferenceType,
		entry.Notes,
	).Scan(&out.ID, &out.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return out, nil
}

// GetBalance returns the current net balance for an entity
func (r *LedgerRepository) GetBalance(ctx context.Context, entityKind string, entityID int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(debit) - SUM(credit), 0) as balance
		FROM ledger_entries
		WHERE entity_kind = $1 AND entity_id = $2
	`

	var balance float64
	err := r.DB.QueryRow(ctx, query, entityKind, entityID).Scan(&balance)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// GetEntityBalance returns the aggregate balance view for one entity.
// Transaction totals are clamped at zero on exposure; the outstanding
// remainder is computed from the clamped totals, not stored.
func (r *LedgerRepository) GetEntityBalance(ctx context.Context, entityKind string, entityID int) (*models.EntityBalance, error) {
	query := `
		SELECT
			GREATEST(0, COALESCE(SUM(CASE WHEN entry_type != 'PAYMENT' THEN debit - credit ELSE 0 END), 0)) as total_credit,
			COALESCE(SUM(CASE WHEN entry_type = 'PAYMENT' THEN credit ELSE 0 END), 0) as total_paid,
			COUNT(*) as entry_count
		FROM ledger_entries
		WHERE entity_kind = $1 AND entity_id = $2
	`

	b := &models.EntityBalance{EntityKind: entityKind, EntityID: entityID}
	err := r.DB.QueryRow(ctx, query, entityKind, entityID).Scan(
		&b.TotalCredit, &b.TotalPaid, &b.EntryCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return b, nil
		}
		return nil, err
	}
	b.Outstanding = b.TotalCredit - b.TotalPaid
	return b, nil
}

// GetAllBalances returns aggregate balances for every entity of a kind
// (bulk query used by the farmer/customer listings).
func (r *LedgerRepository) GetAllBalances(ctx context.Context, entityKind string) (map[int]*models.EntityBalance, error) {
	query := `
		SELECT entity_id,
			GREATEST(0, COALESCE(SUM(CASE WHEN entry_type != 'PAYMENT' THEN debit - credit ELSE 0 END), 0)) as total_credit,
			COALESCE(SUM(CASE WHEN entry_type = 'PAYMENT' THEN credit ELSE 0 END), 0) as total_paid,
			COUNT(*) as entry_count
		FROM ledger_entries
		WHERE entity_kind = $1
		GROUP BY entity_id
	`

	rows, err := r.DB.Query(ctx, query, entityKind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]*models.EntityBalance)
	for rows.Next() {
		b := &models.EntityBalance{EntityKind: entityKind}
		if err := rows.Scan(&b.EntityID, &b.TotalCredit, &b.TotalPaid, &b.EntryCount); err != nil {
			return nil, err
		}
		b.Outstanding = b.TotalCredit - b.TotalPaid
		result[b.EntityID] = b
	}

	return result, nil
}

// GetAll returns ledger entries with optional filters (for audit)
func (r *LedgerRepository) GetAll(ctx context.Context, filter *models.LedgerFilter) ([]models.LedgerEntry, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.EntityKind != "" {
		conditions = append(conditions, fmt.Sprintf("entity_kind = $%d", argNum))
		args = append(args, filter.EntityKind)
		argNum++
	}

	if filter.EntityID > 0 {
		conditions = append(conditions, fmt.Sprintf("entity_id = $%d", argNum))
		args = append(args, filter.EntityID)
		argNum++
	}

	if filter.SeasonID > 0 {
		conditions = append(conditions, fmt.Sprintf("season_id = $%d", argNum))
		args = append(args, filter.SeasonID)
		argNum++
	}

	if filter.EntryType != "" {
		conditions = append(conditions, fmt.Sprintf("entry_type = $%d", argNum))
		args = append(args, filter.EntryType)
		argNum++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argNum))
		args = append(args, filter.StartDate)
		argNum++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argNum))
		args = append(args, filter.EndDate)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}

	query := fmt.Sprintf(`
		SELECT id, entity_kind, entity_id, season_id, entry_type,
			COALESCE(description, '') as description, debit, credit, running_balance,
			reference_id, COALESCE(reference_type, '') as reference_type,
			COALESCE(notes, '') as notes, created_at
		FROM ledger_entries
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argNum, argNum+1)

	args = append(args, limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var refID *int
		err := rows.Scan(
			&e.ID, &e.EntityKind, &e.EntityID, &e.SeasonID, &e.EntryType,
			&e.Description, &e.Debit, &e.Credit, &e.RunningBalance,
			&refID, &e.ReferenceType, &e.Notes, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.ReferenceID = refID
		entries = append(entries, e)
	}

	return entries, nil
}

// GetByReference returns the entries posted against one source row, in
// insertion order. Used to audit a purchase or sale end to end.
func (r *LedgerRepository) GetByReference(ctx context.Context, referenceType string, referenceID int) ([]models.LedgerEntry, error) {
	query := `
		SELECT id, entity_kind, entity_id, season_id, entry_type,
			COALESCE(description, '') as description, debit, credit, running_balance,
			reference_id, COALESCE(reference_type, '') as reference_type,
			COALESCE(notes, '') as notes, created_at
		FROM ledger_entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY id ASC
	`

	rows, err := r.DB.Query(ctx, query, referenceType, referenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var refID *int
		err := rows.Scan(
			&e.ID, &e.EntityKind, &e.EntityID, &e.SeasonID, &e.EntryType,
			&e.Description, &e.Debit, &e.Credit, &e.RunningBalance,
			&refID, &e.ReferenceType, &e.Notes, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.ReferenceID = refID
		entries = append(entries, e)
	}

	return entries, nil
}

// GetDebtors returns entities of a kind with a positive outstanding
// balance (they owe, or are owed, money), largest outstanding first.
func (r *LedgerRepository) GetDebtors(ctx context.Context, entityKind string) ([]models.EntityBalance, error) {
	query := `
		SELECT entity_id,
			GREATEST(0, COALESCE(SUM(CASE WHEN entry_type != 'PAYMENT' THEN debit - credit ELSE 0 END), 0)) as total_credit,
			COALESCE(SUM(CASE WHEN entry_type = 'PAYMENT' THEN credit ELSE 0 END), 0) as total_paid,
			COUNT(*) as entry_count
		FROM ledger_entries
		WHERE entity_kind = $1
		GROUP BY entity_id
		HAVING GREATEST(0, COALESCE(SUM(CASE WHEN entry_type != 'PAYMENT' THEN debit - credit ELSE 0 END), 0))
			- COALESCE(SUM(CASE WHEN entry_type = 'PAYMENT' THEN credit ELSE 0 END), 0) > 0
		ORDER BY GREATEST(0, COALESCE(SUM(CASE WHEN entry_type != 'PAYMENT' THEN debit - credit ELSE 0 END), 0))
			- COALESCE(SUM(CASE WHEN entry_type = 'PAYMENT' THEN credit ELSE 0 END), 0) DESC
	`

	rows, err := r.DB.Query(ctx, query, entityKind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []models.EntityBalance
	for rows.Next() {
		b := models.EntityBalance{EntityKind: entityKind}
		if err := rows.Scan(&b.EntityID, &b.TotalCredit, &b.TotalPaid, &b.EntryCount); err != nil {
			return nil, err
		}
		b.Outstanding = b.TotalCredit - b.TotalPaid
		balances = append(balances, b)
	}

	return balances, nil
}

// TotalOutstanding sums the outstanding remainder across every entity of
// a kind. Used by the season report for receivable/payable rollups.
func (r *LedgerRepository) TotalOutstanding(ctx context.Context, entityKind string) (float64, error) {
	balances, err := r.GetDebtors(ctx, entityKind)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, b := range balances {
		total += b.Outstanding
	}
	return total, nil
}
