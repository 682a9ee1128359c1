package services

import (
	"context"
	"sort"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

// FoldBalance folds an entity's entry stream into its aggregate view.
// Non-payment entries net into TotalCredit, clamped at zero so a
// reversal larger than the accumulated credit never exposes a negative
// total; payments accumulate separately and Outstanding is the
// remainder. The SQL rollups in the ledger repository compute the same
// fold; this is its definition.
func FoldBalance(entityKind string, entityID int, entries []models.LedgerEntry) *models.EntityBalance {
	b := &models.EntityBalance{EntityKind: entityKind, EntityID: entityID}
	var net float64
	for _, e := range entries {
		if e.EntryType == models.LedgerEntryTypePayment {
			b.TotalPaid += e.Credit
		} else {
			net += e.Debit - e.Credit
		}
		b.EntryCount++
	}
	if net > 0 {
		b.TotalCredit = net
	}
	b.Outstanding = b.TotalCredit - b.TotalPaid
	return b
}

// sortDebtors orders balances by outstanding amount, largest first. A
// heavily paid-down large account must not outrank a fully unpaid
// smaller one, so the sort key is the remainder, not the gross credit.
func sortDebtors(balances []models.EntityBalance) {
	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Outstanding > balances[j].Outstanding
	})
}

// LedgerService exposes the append-only ledger for audit views. All
// postings happen inside the purchase, sale and payment transactions;
// nothing writes the ledger directly from here.
type LedgerService struct {
	Repo *repositories.LedgerRepository
}

func NewLedgerService(repo *repositories.LedgerRepository) *LedgerService {
	return &LedgerService{Repo: repo}
}

func (s *LedgerService) GetEntries(ctx context.Context, filter *models.LedgerFilter) ([]models.LedgerEntry, error) {
	return s.Repo.GetAll(ctx, filter)
}

// GetByReference returns the entries a purchase, sale or payment posted,
// in insertion order. A deleted transaction still shows its full trail.
func (s *LedgerService) GetByReference(ctx context.Context, referenceType string, referenceID int) ([]models.LedgerEntry, error) {
	return s.Repo.GetByReference(ctx, referenceType, referenceID)
}

// Debtors lists entities of a kind with a positive outstanding balance,
// largest outstanding first.
func (s *LedgerService) Debtors(ctx context.Context, entityKind string) ([]models.EntityBalance, error) {
	balances, err := s.Repo.GetDebtors(ctx, entityKind)
	if err != nil {
		return nil, err
	}
	sortDebtors(balances)
	return balances, nil
}

func (s *LedgerService) TotalOutstanding(ctx context.Context, entityKind string) (float64, error) {
	return s.Repo.TotalOutstanding(ctx, entityKind)
}

func (s *LedgerService) EntityBalance(ctx context.Context, entityKind string, entityID int) (*models.EntityBalance, error) {
	return s.Repo.GetEntityBalance(ctx, entityKind, entityID)
}
