package services

import (
	"context"
	"errors"
	"testing"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// IN-MEMORY PURCHASE STORE
// ============================================================================

type mockPurchaseStore struct {
	purchases map[int]*models.Purchase
	items     map[int][]models.PurchaseItem
	nextID    int
	purchased map[int]int // per package size
	entries   []*models.CreateLedgerEntryRequest
}

func newMockPurchaseStore() *mockPurchaseStore {
	return &mockPurchaseStore{
		purchases: make(map[int]*models.Purchase),
		items:     make(map[int][]models.PurchaseItem),
		nextID:    1,
		purchased: make(map[int]int),
	}
}

func (m *mockPurchaseStore) WithTx(ctx context.Context, fn func(context.Context, repositories.PurchaseTx) error) error {
	return fn(ctx, &mockPurchaseTx{store: m})
}

func (m *mockPurchaseStore) Get(ctx context.Context, id int) (*models.Purchase, error) {
	p, ok := m.purchases[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	copied := *p
	copied.Items = append([]models.PurchaseItem(nil), m.items[id]...)
	return &copied, nil
}

func (m *mockPurchaseStore) List(ctx context.Context, seasonID int) ([]*models.Purchase, error) {
	var out []*models.Purchase
	for id, p := range m.purchases {
		if p.SeasonID == seasonID {
			got, _ := m.Get(ctx, id)
			out = append(out, got)
		}
	}
	return out, nil
}

func (m *mockPurchaseStore) LatestRate(ctx context.Context, seasonID, packageSizeID int) (float64, bool, error) {
	for _, items := range m.items {
		for _, item := range items {
			if item.PackageSizeID == packageSizeID {
				return item.RatePerUnit, true, nil
			}
		}
	}
	return 0, false, nil
}

type mockPurchaseTx struct {
	store *mockPurchaseStore
}

func (t *mockPurchaseTx) InsertPurchase(ctx context.Context, p *models.Purchase) error {
	p.ID = t.store.nextID
	t.store.nextID++
	copied := *p
	t.store.purchases[p.ID] = &copied
	return nil
}

func (t *mockPurchaseTx) InsertItems(ctx context.Context, purchaseID int, items []models.PurchaseItem) error {
	t.store.items[purchaseID] = append([]models.PurchaseItem(nil), items...)
	return nil
}

func (t *mockPurchaseTx) UpdatePurchase(ctx context.Context, p *models.Purchase) error {
	copied := *p
	t.store.purchases[p.ID] = &copied
	return nil
}

func (t *mockPurchaseTx) DeleteItems(ctx context.Context, purchaseID int) error {
	delete(t.store.items, purchaseID)
	return nil
}

func (t *mockPurchaseTx) DeletePurchase(ctx context.Context, id int) error {
	delete(t.store.purchases, id)
	return nil
}

func (t *mockPurchaseTx) PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	t.store.entries = append(t.store.entries, entry)
	return &models.LedgerEntry{}, nil
}

func (t *mockPurchaseTx) AdjustStock(ctx context.Context, seasonID, packageSizeID, purchasedDelta, soldDelta int) error {
	t.store.purchased[packageSizeID] += purchasedDelta
	return nil
}

type fakeFarmers struct {
	farmers map[int]*models.Farmer
}

func (f *fakeFarmers) Get(ctx context.Context, id int) (*models.Farmer, error) {
	farmer, ok := f.farmers[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return farmer, nil
}

func newPurchaseFixture() (*PurchaseService, *mockPurchaseStore) {
	store := newMockPurchaseStore()
	farmers := &fakeFarmers{farmers: map[int]*models.Farmer{
		1: {ID: 1, Name: "Ganesh", Village: "Ratnagiri"},
		2: {ID: 2, Name: "Mahesh", Village: "Devgad"},
	}}
	sizes := &fakePackageSizes{sizes: map[int]*models.PackageSize{
		1: {ID: 1, Name: "Dozen Box", PiecesPerBox: 12, IsActive: true},
		2: {ID: 2, Name: "Half Box", PiecesPerBox: 6, IsActive: true},
	}}
	return NewPurchaseService(store, farmers, sizes), store
}

// ============================================================================
// TESTS
// ============================================================================

func TestRecordPurchasePostsDebitAndStock(t *testing.T) {
	svc, store := newPurchaseFixture()

	purchase, err := svc.RecordPurchase(context.Background(), 7, &models.CreatePurchaseRequest{
		FarmerID:     1,
		PurchaseDate: "2026-03-10",
		Items: []models.PurchaseItemRequest{
			{PackageSizeID: 1, Quantity: 10, RatePerUnit: 1200},
			{PackageSizeID: 2, Quantity: 4, RatePerUnit: 700},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 14800.0, purchase.TotalAmount) // 10*1200 + 4*700
	assert.Equal(t, 10, store.purchased[1])
	assert.Equal(t, 4, store.purchased[2])

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypePurchase, entry.EntryType)
	assert.Equal(t, models.EntityKindFarmer, entry.EntityKind)
	assert.Equal(t, 14800.0, entry.Debit)
	assert.Contains(t, entry.Description, "Ganesh")
}

func TestEditPurchaseSameFarmerPostsDelta(t *testing.T) {
	svc, store := newPurchaseFixture()

	purchase, err := svc.RecordPurchase(context.Background(), 7, &models.CreatePurchaseRequest{
		FarmerID:     1,
		PurchaseDate: "2026-03-10",
		Items:        []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerUnit: 1200}},
	})
	require.NoError(t, err)
	store.entries = nil

	// 12000 -> 9600: the farmer is owed 2400 less.
	_, err = svc.EditPurchase(context.Background(), purchase.ID, &models.UpdatePurchaseRequest{
		FarmerID:     1,
		PurchaseDate: "2026-03-10",
		Items:        []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 8, RatePerUnit: 1200}},
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypePurchaseEdit, entry.EntryType)
	assert.Equal(t, 2400.0, entry.Credit)
	assert.Equal(t, 0.0, entry.Debit)
	assert.Equal(t, 8, store.purchased[1])
}

func TestEditPurchaseChangedFarmerReversesAndRedebits(t *testing.T) {
	svc, store := newPurchaseFixture()

	purchase, err := svc.RecordPurchase(context.Background(), 7, &models.CreatePurchaseRequest{
		FarmerID:     1,
		PurchaseDate: "2026-03-10",
		Items:        []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerUnit: 1200}},
	})
	require.NoError(t, err)
	store.entries = nil

	_, err = svc.EditPurchase(context.Background(), purchase.ID, &models.UpdatePurchaseRequest{
		FarmerID:     2,
		PurchaseDate: "2026-03-10",
		Items:        []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerUnit: 1100}},
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 2)

	reversal := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypePurchaseReversal, reversal.EntryType)
	assert.Equal(t, 1, reversal.EntityID)
	assert.Equal(t, 12000.0, reversal.Credit)

	debit := store.entries[1]
	assert.Equal(t, models.LedgerEntryTypePurchaseEdit, debit.EntryType)
	assert.Equal(t, 2, debit.EntityID)
	assert.Equal(t, 11000.0, debit.Debit)
}

func TestDeletePurchaseReversesDebitAndStock(t *testing.T) {
	svc, store := newPurchaseFixture()

	purchase, err := svc.RecordPurchase(context.Background(), 7, &models.CreatePurchaseRequest{
		FarmerID:     1,
		PurchaseDate: "2026-03-10",
		Items:        []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerUnit: 1200}},
	})
	require.NoError(t, err)
	store.entries = nil

	require.NoError(t, svc.DeletePurchase(context.Background(), purchase.ID))

	assert.Empty(t, store.purchases)
	assert.Equal(t, 0, store.purchased[1])

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypePurchaseReversal, entry.EntryType)
	assert.Equal(t, 12000.0, entry.Credit)
}

func TestRecordPurchaseRejectsBadInput(t *testing.T) {
	svc, store := newPurchaseFixture()

	cases := []struct {
		name string
		req  *models.CreatePurchaseRequest
	}{
		{"unknown farmer", &models.CreatePurchaseRequest{
			FarmerID: 99, PurchaseDate: "2026-03-10",
			Items: []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 1, RatePerUnit: 100}},
		}},
		{"no items", &models.CreatePurchaseRequest{
			FarmerID: 1, PurchaseDate: "2026-03-10",
		}},
		{"zero quantity", &models.CreatePurchaseRequest{
			FarmerID: 1, PurchaseDate: "2026-03-10",
			Items: []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 0, RatePerUnit: 100}},
		}},
		{"unknown package size", &models.CreatePurchaseRequest{
			FarmerID: 1, PurchaseDate: "2026-03-10",
			Items: []models.PurchaseItemRequest{{PackageSizeID: 99, Quantity: 1, RatePerUnit: 100}},
		}},
		{"bad date", &models.CreatePurchaseRequest{
			FarmerID: 1, PurchaseDate: "10/03/2026",
			Items: []models.PurchaseItemRequest{{PackageSizeID: 1, Quantity: 1, RatePerUnit: 100}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordPurchase(context.Background(), 7, tc.req)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, store.purchases)
	assert.Empty(t, store.entries)
}
