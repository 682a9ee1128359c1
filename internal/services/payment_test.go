package services

import (
	"context"
	"testing"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPaymentStore struct {
	payments map[int]*models.Payment
	nextID   int
	entries  []*models.CreateLedgerEntryRequest
}

func newMockPaymentStore() *mockPaymentStore {
	return &mockPaymentStore{payments: make(map[int]*models.Payment), nextID: 1}
}

func (m *mockPaymentStore) WithTx(ctx context.Context, fn func(context.Context, repositories.PaymentTx) error) error {
	return fn(ctx, &mockPaymentTx{store: m})
}

func (m *mockPaymentStore) Get(ctx context.Context, id int) (*models.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

func (m *mockPaymentStore) List(ctx context.Context, seasonID int, entityKind string, entityID int) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range m.payments {
		if p.SeasonID != seasonID {
			continue
		}
		if entityKind != "" && p.EntityKind != entityKind {
			continue
		}
		if entityID != 0 && p.EntityID != entityID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type mockPaymentTx struct {
	store *mockPaymentStore
}

func (t *mockPaymentTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	p.ID = t.store.nextID
	t.store.nextID++
	copied := *p
	t.store.payments[p.ID] = &copied
	return nil
}

func (t *mockPaymentTx) PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	t.store.entries = append(t.store.entries, entry)
	return &models.LedgerEntry{}, nil
}

func newPaymentFixture() (*PaymentService, *mockPaymentStore) {
	store := newMockPaymentStore()
	customers := &fakeCustomers{customers: map[int]*models.Customer{
		1: {ID: 1, Name: "Ramesh", Type: "credit"},
	}}
	farmers := &fakeFarmers{farmers: map[int]*models.Farmer{
		5: {ID: 5, Name: "Ganesh"},
	}}
	return NewPaymentService(store, customers, farmers), store
}

func TestRecordCustomerPaymentPostsCredit(t *testing.T) {
	svc, store := newPaymentFixture()

	payment, err := svc.RecordPayment(context.Background(), 7, &models.CreatePaymentRequest{
		EntityKind:  models.EntityKindCustomer,
		EntityID:    1,
		Amount:      2500,
		PaymentDate: "2026-03-20",
		Mode:        "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, payment.Amount)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypePayment, entry.EntryType)
	assert.Equal(t, 2500.0, entry.Credit)
	assert.Equal(t, 0.0, entry.Debit)
	assert.Equal(t, "Payment received from Ramesh", entry.Description)
}

func TestRecordFarmerPaymentDescription(t *testing.T) {
	svc, store := newPaymentFixture()

	_, err := svc.RecordPayment(context.Background(), 7, &models.CreatePaymentRequest{
		EntityKind:  models.EntityKindFarmer,
		EntityID:    5,
		Amount:      10000,
		PaymentDate: "2026-03-20",
		Mode:        "cash",
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	assert.Equal(t, "Payment made to Ganesh", store.entries[0].Description)
}

func TestRecordPaymentRejectsBadInput(t *testing.T) {
	svc, store := newPaymentFixture()

	cases := []struct {
		name string
		req  *models.CreatePaymentRequest
	}{
		{"zero amount", &models.CreatePaymentRequest{
			EntityKind: models.EntityKindCustomer, EntityID: 1, Amount: 0, PaymentDate: "2026-03-20",
		}},
		{"negative amount", &models.CreatePaymentRequest{
			EntityKind: models.EntityKindCustomer, EntityID: 1, Amount: -100, PaymentDate: "2026-03-20",
		}},
		{"bad entity kind", &models.CreatePaymentRequest{
			EntityKind: "vendor", EntityID: 1, Amount: 100, PaymentDate: "2026-03-20",
		}},
		{"unknown customer", &models.CreatePaymentRequest{
			EntityKind: models.EntityKindCustomer, EntityID: 99, Amount: 100, PaymentDate: "2026-03-20",
		}},
		{"bad date", &models.CreatePaymentRequest{
			EntityKind: models.EntityKindCustomer, EntityID: 1, Amount: 100, PaymentDate: "20-03-2026",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordPayment(context.Background(), 7, tc.req)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, store.payments)
	assert.Empty(t, store.entries)
}
