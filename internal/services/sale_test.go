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
// IN-MEMORY SALE STORE
// ============================================================================

type mockSaleStore struct {
	sales     map[int]*models.Sale
	items     map[int][]models.SaleItem
	nextID    int
	seqs      map[int]int
	available map[int]int // per package size, season-scoped
	entries   []*models.CreateLedgerEntryRequest
	fulfilled []int
}

func newMockSaleStore() *mockSaleStore {
	return &mockSaleStore{
		sales:     make(map[int]*models.Sale),
		items:     make(map[int][]models.SaleItem),
		nextID:    1,
		seqs:      make(map[int]int),
		available: make(map[int]int),
	}
}

func (m *mockSaleStore) WithTx(ctx context.Context, fn func(context.Context, repositories.SaleTx) error) error {
	return fn(ctx, &mockSaleTx{store: m})
}

func (m *mockSaleStore) Get(ctx context.Context, id int) (*models.Sale, error) {
	sale, ok := m.sales[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	copied := *sale
	copied.Items = append([]models.SaleItem(nil), m.items[id]...)
	return &copied, nil
}

func (m *mockSaleStore) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Sale, error) {
	for id, sale := range m.sales {
		if sale.InvoiceNumber == invoiceNumber {
			return m.Get(ctx, id)
		}
	}
	return nil, errors.New("no rows in result set")
}

func (m *mockSaleStore) List(ctx context.Context, seasonID int) ([]*models.Sale, error) {
	var out []*models.Sale
	for id, sale := range m.sales {
		if sale.SeasonID == seasonID {
			s, _ := m.Get(ctx, id)
			out = append(out, s)
		}
	}
	return out, nil
}

type mockSaleTx struct {
	store *mockSaleStore
}

func (t *mockSaleTx) GetSale(ctx context.Context, id int) (*models.Sale, error) {
	return t.store.Get(ctx, id)
}

func (t *mockSaleTx) InsertSale(ctx context.Context, s *models.Sale) error {
	s.ID = t.store.nextID
	t.store.nextID++
	copied := *s
	t.store.sales[s.ID] = &copied
	return nil
}

func (t *mockSaleTx) InsertItems(ctx context.Context, saleID int, items []models.SaleItem) error {
	t.store.items[saleID] = append([]models.SaleItem(nil), items...)
	return nil
}

func (t *mockSaleTx) UpdateSale(ctx context.Context, s *models.Sale) error {
	copied := *s
	t.store.sales[s.ID] = &copied
	return nil
}

func (t *mockSaleTx) DeleteItems(ctx context.Context, saleID int) error {
	delete(t.store.items, saleID)
	return nil
}

func (t *mockSaleTx) DeleteSale(ctx context.Context, id int) error {
	delete(t.store.sales, id)
	return nil
}

func (t *mockSaleTx) AvailableStock(ctx context.Context, seasonID int) (map[int]int, error) {
	out := make(map[int]int, len(t.store.available))
	for k, v := range t.store.available {
		out[k] = v
	}
	return out, nil
}

func (t *mockSaleTx) AdjustStock(ctx context.Context, seasonID, packageSizeID, purchasedDelta, soldDelta int) error {
	t.store.available[packageSizeID] += purchasedDelta - soldDelta
	return nil
}

func (t *mockSaleTx) PostLedgerEntry(ctx context.Context, entry *models.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	t.store.entries = append(t.store.entries, entry)
	return &models.LedgerEntry{}, nil
}

func (t *mockSaleTx) NextInvoiceSeq(ctx context.Context, seasonID int) (int, error) {
	t.store.seqs[seasonID]++
	return t.store.seqs[seasonID], nil
}

func (t *mockSaleTx) MarkEnquiryFulfilled(ctx context.Context, enquiryID int) error {
	t.store.fulfilled = append(t.store.fulfilled, enquiryID)
	return nil
}

// ============================================================================
// LOOKUP FAKES
// ============================================================================

type fakeCustomers struct {
	customers map[int]*models.Customer
}

func (f *fakeCustomers) Get(ctx context.Context, id int) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return c, nil
}

type fakePackageSizes struct {
	sizes map[int]*models.PackageSize
}

func (f *fakePackageSizes) Get(ctx context.Context, id int) (*models.PackageSize, error) {
	p, ok := f.sizes[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return p, nil
}

type fakeRates struct {
	rates map[int]float64
}

func (f *fakeRates) LatestRate(ctx context.Context, seasonID, packageSizeID int) (float64, bool, error) {
	rate, ok := f.rates[packageSizeID]
	return rate, ok, nil
}

func newSaleFixture() (*SaleService, *mockSaleStore) {
	store := newMockSaleStore()
	customers := &fakeCustomers{customers: map[int]*models.Customer{
		1: {ID: 1, Name: "Ramesh", Phone: "9876543210", Type: "credit"},
		2: {ID: 2, Name: "Suresh", Type: "walk-in-cash"},
	}}
	sizes := &fakePackageSizes{sizes: map[int]*models.PackageSize{
		1: {ID: 1, Name: "Dozen Box", PiecesPerBox: 12, IsActive: true},
		2: {ID: 2, Name: "Half Box", PiecesPerBox: 6, IsActive: true},
	}}
	rates := &fakeRates{rates: map[int]float64{1: 1200, 2: 700}}
	return NewSaleService(store, customers, sizes, rates), store
}

// ============================================================================
// TESTS
// ============================================================================

func TestRecordSalePendingPostsUnpaidImpact(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 20

	sale, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:     1,
		SaleDate:       "2026-03-15",
		PaymentMode:    "cash",
		PaymentStatus:  models.PaymentStatusPending,
		DeliveryCharge: 100,
		Items: []models.SaleItemRequest{
			{PackageSizeID: 1, Quantity: 5, RatePerDozen: 1500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-7-0001", sale.InvoiceNumber)
	assert.Equal(t, 7600.0, sale.TotalAmount) // 5*1500 + 100 delivery
	assert.Equal(t, 0.0, sale.AmountPaid)
	assert.Equal(t, 1200.0, sale.Items[0].BuyingRate)
	assert.Equal(t, 15, store.available[1])

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypeSale, entry.EntryType)
	assert.Equal(t, 7600.0, entry.Debit)
	assert.Equal(t, 0.0, entry.Credit)
	assert.Equal(t, models.EntityKindCustomer, entry.EntityKind)
}

func TestRecordSalePaidPostsNothing(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 20

	sale, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:    2,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.SaleItemRequest{
			{PackageSizeID: 1, Quantity: 3, RatePerDozen: 1500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 4500.0, sale.TotalAmount)
	assert.Equal(t, 4500.0, sale.AmountPaid)
	assert.Empty(t, store.entries, "a fully paid sale has no ledger impact")
}

func TestRecordSaleInvoiceNumbersArePerSeason(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 50

	req := func() *models.CreateSaleRequest {
		return &models.CreateSaleRequest{
			CustomerID:    1,
			SaleDate:      "2026-03-15",
			PaymentStatus: models.PaymentStatusPaid,
			Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 1, RatePerDozen: 1500}},
		}
	}

	first, err := svc.RecordSale(context.Background(), 7, req())
	require.NoError(t, err)
	second, err := svc.RecordSale(context.Background(), 7, req())
	require.NoError(t, err)
	other, err := svc.RecordSale(context.Background(), 8, req())
	require.NoError(t, err)

	assert.Equal(t, "INV-7-0001", first.InvoiceNumber)
	assert.Equal(t, "INV-7-0002", second.InvoiceNumber)
	assert.Equal(t, "INV-8-0001", other.InvoiceNumber)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 10

	_, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPending,
		Items: []models.SaleItemRequest{
			{PackageSizeID: 1, Quantity: 15, RatePerDozen: 1500},
		},
	})
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Dozen Box", stockErr.PackageSizeName)
	assert.Equal(t, 15, stockErr.Requested)
	assert.Equal(t, 10, stockErr.Available)
	assert.Contains(t, err.Error(), "requested 15, available 10")

	// Nothing was written.
	assert.Empty(t, store.sales)
	assert.Empty(t, store.entries)
	assert.Equal(t, 10, store.available[1])
}

func TestEditSaleStockValidationReturnsOwnQuantities(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 20

	sale, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPending,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 18, RatePerDozen: 1500}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, store.available[1])

	// 20 requested > 2 available, but the sale's own 18 are back in the
	// pool during validation.
	updated, err := svc.EditSale(context.Background(), sale.ID, &models.UpdateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPending,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 20, RatePerDozen: 1500}},
	})
	require.NoError(t, err)
	assert.Equal(t, 30000.0, updated.TotalAmount)
	assert.Equal(t, 0, store.available[1])
}

func TestEditSalePartialPaymentPostsDelta(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 50

	sale, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPending,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerDozen: 100}},
	})
	require.NoError(t, err)
	store.sales[sale.ID].AmountPaid = 400
	store.sales[sale.ID].PaymentStatus = models.PaymentStatusPartial
	store.entries = nil

	// Total goes 1000 -> 1200 with 400 already paid: impact moves from
	// 600 to 800, so the edit posts a 200 debit.
	_, err = svc.EditSale(context.Background(), sale.ID, &models.UpdateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPartial,
		AmountPaid:    400,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 12, RatePerDozen: 100}},
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypeSaleEdit, entry.EntryType)
	assert.Equal(t, 200.0, entry.Debit)
	assert.Equal(t, 0.0, entry.Credit)
}

func TestEditSaleCrossCustomerMovesImpact(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 50

	sale, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPending,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerDozen: 100}},
	})
	require.NoError(t, err)
	store.entries = nil

	_, err = svc.EditSale(context.Background(), sale.ID, &models.UpdateSaleRequest{
		CustomerID:    2,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPending,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerDozen: 100}},
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 2)

	reversal := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypeSaleReversal, reversal.EntryType)
	assert.Equal(t, 1, reversal.EntityID)
	assert.Equal(t, 1000.0, reversal.Credit)

	edit := store.entries[1]
	assert.Equal(t, models.LedgerEntryTypeSaleEdit, edit.EntryType)
	assert.Equal(t, 2, edit.EntityID)
	assert.Equal(t, 1000.0, edit.Debit)
}

func TestDeleteSaleReversesUnpaidImpactOnly(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 50

	sale, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPending,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 10, RatePerDozen: 100}},
	})
	require.NoError(t, err)

	// Record a partial payment directly on the sale row.
	store.sales[sale.ID].AmountPaid = 400
	store.sales[sale.ID].PaymentStatus = models.PaymentStatusPartial
	store.entries = nil

	require.NoError(t, svc.DeleteSale(context.Background(), sale.ID))

	assert.Empty(t, store.sales)
	assert.Equal(t, 50, store.available[1], "quantities returned to stock")

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, models.LedgerEntryTypeSaleReversal, entry.EntryType)
	assert.Equal(t, 600.0, entry.Credit, "only the unpaid remainder is reversed")
}

func TestRecordSaleMarksEnquiryFulfilled(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 20
	enquiryID := 42

	_, err := svc.RecordSale(context.Background(), 7, &models.CreateSaleRequest{
		CustomerID:    1,
		SaleDate:      "2026-03-15",
		PaymentStatus: models.PaymentStatusPaid,
		EnquiryID:     &enquiryID,
		Items:         []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 2, RatePerDozen: 1500}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{42}, store.fulfilled)
}

func TestRecordSaleRejectsBadInput(t *testing.T) {
	svc, store := newSaleFixture()
	store.available[1] = 20

	cases := []struct {
		name string
		req  *models.CreateSaleRequest
	}{
		{"unknown customer", &models.CreateSaleRequest{
			CustomerID: 99, SaleDate: "2026-03-15",
			Items: []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 1, RatePerDozen: 100}},
		}},
		{"no items", &models.CreateSaleRequest{
			CustomerID: 1, SaleDate: "2026-03-15",
		}},
		{"zero quantity", &models.CreateSaleRequest{
			CustomerID: 1, SaleDate: "2026-03-15",
			Items: []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 0, RatePerDozen: 100}},
		}},
		{"bad date", &models.CreateSaleRequest{
			CustomerID: 1, SaleDate: "15-03-2026",
			Items: []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 1, RatePerDozen: 100}},
		}},
		{"negative delivery", &models.CreateSaleRequest{
			CustomerID: 1, SaleDate: "2026-03-15", DeliveryCharge: -5,
			Items: []models.SaleItemRequest{{PackageSizeID: 1, Quantity: 1, RatePerDozen: 100}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordSale(context.Background(), 7, tc.req)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, store.sales)
}
