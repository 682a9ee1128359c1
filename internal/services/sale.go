package services

import (
	"context"
	"errors"
	"fmt"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"
)

// CustomerSource is the customer lookup the sale and payment services
// need. Satisfied by *repositories.CustomerRepository.
type CustomerSource interface {
	Get(ctx context.Context, id int) (*models.Customer, error)
}

// RateSource supplies the latest buying rate for a package size, used to
// capture the cost basis on each sale item. Satisfied by
// repositories.PurchaseStore.
type RateSource interface {
	LatestRate(ctx context.Context, seasonID, packageSizeID int) (float64, bool, error)
}

// ErrSaleNotFound reports an edit or delete against a sale that does
// not exist.
var ErrSaleNotFound = errors.New("sale not found")

type SaleService struct {
	Store        repositories.SaleStore
	Customers    CustomerSource
	PackageSizes PackageSizeSource
	Rates        RateSource
}

func NewSaleService(store repositories.SaleStore, customers CustomerSource, packageSizes PackageSizeSource, rates RateSource) *SaleService {
	return &SaleService{
		Store:        store,
		Customers:    customers,
		PackageSizes: packageSizes,
		Rates:        rates,
	}
}

func (s *SaleService) GetSale(ctx context.Context, id int) (*models.Sale, error) {
	return s.Store.Get(ctx, id)
}

func (s *SaleService) GetSaleByInvoice(ctx context.Context, invoiceNumber string) (*models.Sale, error) {
	return s.Store.GetByInvoiceNumber(ctx, invoiceNumber)
}

func (s *SaleService) ListSales(ctx context.Context, seasonID int) ([]*models.Sale, error) {
	return s.Store.List(ctx, seasonID)
}

func validPaymentStatus(status string) bool {
	switch status {
	case models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusPartial:
		return true
	}
	return false
}

// buildSaleItems resolves package sizes, prices each line and captures
// the current buying rate as cost basis. Returns the items and the item
// total (delivery charge excluded).
func (s *SaleService) buildSaleItems(ctx context.Context, seasonID int, reqs []models.SaleItemRequest) ([]models.SaleItem, float64, error) {
	if len(reqs) == 0 {
		return nil, 0, errors.New("sale must have at least one item")
	}
	var items []models.SaleItem
	var total float64
	for _, ir := range reqs {
		if ir.Quantity < 1 {
			return nil, 0, errors.New("item quantity must be at least 1")
		}
		if ir.RatePerDozen < 0 {
			return nil, 0, errors.New("item rate cannot be negative")
		}
		pkg, err := s.PackageSizes.Get(ctx, ir.PackageSizeID)
		if err != nil {
			return nil, 0, fmt.Errorf("package size %d not found", ir.PackageSizeID)
		}
		buyingRate, _, err := s.Rates.LatestRate(ctx, seasonID, ir.PackageSizeID)
		if err != nil {
			return nil, 0, err
		}
		item := models.SaleItem{
			PackageSizeID:   pkg.ID,
			PackageSizeName: pkg.Name,
			Quantity:        ir.Quantity,
			RatePerDozen:    ir.RatePerDozen,
			BuyingRate:      buyingRate,
			Total:           float64(ir.Quantity) * ir.RatePerDozen,
		}
		items = append(items, item)
		total += item.Total
	}
	return items, total, nil
}

// validateStock checks every requested quantity against availability,
// returning an InsufficientStockError for the first shortfall. returned
// holds the sale's own prior quantities, already back in the pool for
// edits.
func validateStock(items []models.SaleItem, available, returned map[int]int) error {
	requested := make(map[int]int)
	names := make(map[int]string)
	for _, item := range items {
		requested[item.PackageSizeID] += item.Quantity
		names[item.PackageSizeID] = item.PackageSizeName
	}
	for pkgID, qty := range requested {
		avail := available[pkgID] + returned[pkgID]
		if qty > avail {
			return &InsufficientStockError{
				PackageSizeID:   pkgID,
				PackageSizeName: names[pkgID],
				Requested:       qty,
				Available:       avail,
			}
		}
	}
	return nil
}

// RecordSale creates a sale with its items inside one transaction:
// stock is validated and moved, the invoice number assigned, the unpaid
// impact posted to the customer's ledger and any source enquiry marked
// fulfilled. A paid sale carries no ledger impact.
func (s *SaleService) RecordSale(ctx context.Context, seasonID int, req *models.CreateSaleRequest) (*models.Sale, error) {
	customer, err := s.Customers.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	status := req.PaymentStatus
	if status == "" {
		status = models.PaymentStatusPending
	}
	if !validPaymentStatus(status) {
		return nil, errors.New("payment status must be paid, pending or partial")
	}
	if req.DeliveryCharge < 0 {
		return nil, errors.New("delivery charge cannot be negative")
	}

	saleDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.SaleDate)
	if err != nil {
		return nil, errors.New("sale date must be YYYY-MM-DD")
	}

	items, itemTotal, err := s.buildSaleItems(ctx, seasonID, req.Items)
	if err != nil {
		return nil, err
	}

	totalAmount := itemTotal + req.DeliveryCharge
	amountPaid := 0.0
	if status == models.PaymentStatusPaid {
		amountPaid = totalAmount
	}

	sale := &models.Sale{
		CustomerID:     req.CustomerID,
		SeasonID:       seasonID,
		SaleDate:       saleDate,
		PaymentMode:    req.PaymentMode,
		PaymentStatus:  status,
		TotalAmount:    totalAmount,
		AmountPaid:     amountPaid,
		DeliveryCharge: req.DeliveryCharge,
		Notes:          req.Notes,
		EnquiryID:      req.EnquiryID,
	}

	err = s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.SaleTx) error {
		available, err := tx.AvailableStock(ctx, seasonID)
		if err != nil {
			return err
		}
		if err := validateStock(items, available, nil); err != nil {
			return err
		}

		seq, err := tx.NextInvoiceSeq(ctx, seasonID)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = fmt.Sprintf("INV-%d-%04d", seasonID, seq)

		if err := tx.InsertSale(ctx, sale); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, sale.ID, items); err != nil {
			return err
		}
		for pkgID, qty := range saleQuantityByPackage(items) {
			if err := tx.AdjustStock(ctx, seasonID, pkgID, 0, qty); err != nil {
				return err
			}
		}

		if impact := sale.BalanceImpact(); impact > 0 {
			_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
				EntityKind:    models.EntityKindCustomer,
				EntityID:      sale.CustomerID,
				SeasonID:      seasonID,
				EntryType:     models.LedgerEntryTypeSale,
				Description:   fmt.Sprintf("Sale %s to %s", sale.InvoiceNumber, customer.Name),
				Debit:         impact,
				ReferenceID:   &sale.ID,
				ReferenceType: models.LedgerRefSale,
			})
			if err != nil {
				return err
			}
		}

		if req.EnquiryID != nil {
			if err := tx.MarkEnquiryFulfilled(ctx, *req.EnquiryID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Store.Get(ctx, sale.ID)
}

// EditSale replaces a sale's items and reposts its ledger impact. Stock
// validation treats the sale's own prior quantities as already returned.
// Balance deltas always use impact = total_amount - amount_paid, so a
// partially paid sale never over-adjusts.
func (s *SaleService) EditSale(ctx context.Context, id int, req *models.UpdateSaleRequest) (*models.Sale, error) {
	customer, err := s.Customers.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	if !validPaymentStatus(req.PaymentStatus) {
		return nil, errors.New("payment status must be paid, pending or partial")
	}
	if req.DeliveryCharge < 0 {
		return nil, errors.New("delivery charge cannot be negative")
	}
	if req.AmountPaid < 0 {
		return nil, errors.New("amount paid cannot be negative")
	}

	saleDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.SaleDate)
	if err != nil {
		return nil, errors.New("sale date must be YYYY-MM-DD")
	}

	err = s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.SaleTx) error {
		old, err := tx.GetSale(ctx, id)
		if err != nil {
			return ErrSaleNotFound
		}

		items, itemTotal, err := s.buildSaleItems(ctx, old.SeasonID, req.Items)
		if err != nil {
			return err
		}

		totalAmount := itemTotal + req.DeliveryCharge
		amountPaid := req.AmountPaid
		if req.PaymentStatus == models.PaymentStatusPaid {
			amountPaid = totalAmount
		}
		if amountPaid > totalAmount {
			return errors.New("amount paid cannot exceed total amount")
		}

		available, err := tx.AvailableStock(ctx, old.SeasonID)
		if err != nil {
			return err
		}
		returned := saleQuantityByPackage(old.Items)
		if err := validateStock(items, available, returned); err != nil {
			return err
		}

		updated := &models.Sale{
			ID:             id,
			CustomerID:     req.CustomerID,
			SeasonID:       old.SeasonID,
			SaleDate:       saleDate,
			InvoiceNumber:  old.InvoiceNumber,
			PaymentMode:    req.PaymentMode,
			PaymentStatus:  req.PaymentStatus,
			TotalAmount:    totalAmount,
			AmountPaid:     amountPaid,
			DeliveryCharge: req.DeliveryCharge,
			Notes:          req.Notes,
		}

		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := tx.UpdateSale(ctx, updated); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, id, items); err != nil {
			return err
		}

		deltas := saleQuantityByPackage(items)
		for pkgID, qty := range returned {
			deltas[pkgID] -= qty
		}
		for pkgID, delta := range deltas {
			if delta == 0 {
				continue
			}
			if err := tx.AdjustStock(ctx, old.SeasonID, pkgID, 0, delta); err != nil {
				return err
			}
		}

		oldImpact := old.BalanceImpact()
		newImpact := updated.BalanceImpact()

		if req.CustomerID == old.CustomerID {
			if delta := newImpact - oldImpact; delta != 0 {
				entry := &models.CreateLedgerEntryRequest{
					EntityKind:    models.EntityKindCustomer,
					EntityID:      old.CustomerID,
					SeasonID:      old.SeasonID,
					EntryType:     models.LedgerEntryTypeSaleEdit,
					Description:   fmt.Sprintf("Sale %s edited", old.InvoiceNumber),
					ReferenceID:   &id,
					ReferenceType: models.LedgerRefSale,
				}
				if delta > 0 {
					entry.Debit = delta
				} else {
					entry.Credit = -delta
				}
				if _, err := tx.PostLedgerEntry(ctx, entry); err != nil {
					return err
				}
			}
		} else {
			if oldImpact > 0 {
				_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
					EntityKind:    models.EntityKindCustomer,
					EntityID:      old.CustomerID,
					SeasonID:      old.SeasonID,
					EntryType:     models.LedgerEntryTypeSaleReversal,
					Description:   fmt.Sprintf("Sale %s moved to %s", old.InvoiceNumber, customer.Name),
					Credit:        oldImpact,
					ReferenceID:   &id,
					ReferenceType: models.LedgerRefSale,
				})
				if err != nil {
					return err
				}
			}
			if newImpact > 0 {
				_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
					EntityKind:    models.EntityKindCustomer,
					EntityID:      req.CustomerID,
					SeasonID:      old.SeasonID,
					EntryType:     models.LedgerEntryTypeSaleEdit,
					Description:   fmt.Sprintf("Sale %s to %s", old.InvoiceNumber, customer.Name),
					Debit:         newImpact,
					ReferenceID:   &id,
					ReferenceType: models.LedgerRefSale,
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Store.Get(ctx, id)
}

// DeleteSale removes a sale and its items, returns the quantities to
// stock and reverses the sale's surviving ledger impact. Deletion
// reverses the same impact the sale posted, so a partially paid sale
// subtracts only its unpaid remainder.
func (s *SaleService) DeleteSale(ctx context.Context, id int) error {
	return s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.SaleTx) error {
		old, err := tx.GetSale(ctx, id)
		if err != nil {
			return ErrSaleNotFound
		}

		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteSale(ctx, id); err != nil {
			return err
		}
		for pkgID, qty := range saleQuantityByPackage(old.Items) {
			if err := tx.AdjustStock(ctx, old.SeasonID, pkgID, 0, -qty); err != nil {
				return err
			}
		}

		if impact := old.BalanceImpact(); impact > 0 {
			_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
				EntityKind:    models.EntityKindCustomer,
				EntityID:      old.CustomerID,
				SeasonID:      old.SeasonID,
				EntryType:     models.LedgerEntryTypeSaleReversal,
				Description:   fmt.Sprintf("Sale %s deleted", old.InvoiceNumber),
				Credit:        impact,
				ReferenceID:   &id,
				ReferenceType: models.LedgerRefSale,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func saleQuantityByPackage(items []models.SaleItem) map[int]int {
	result := make(map[int]int)
	for _, item := range items {
		result[item.PackageSizeID] += item.Quantity
	}
	return result
}
