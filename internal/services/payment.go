package services

import (
	"context"
	"errors"
	"fmt"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"
)

type PaymentService struct {
	Store     repositories.PaymentStore
	Customers CustomerSource
	Farmers   FarmerSource
}

func NewPaymentService(store repositories.PaymentStore, customers CustomerSource, farmers FarmerSource) *PaymentService {
	return &PaymentService{
		Store:     store,
		Customers: customers,
		Farmers:   farmers,
	}
}

func (s *PaymentService) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return s.Store.Get(ctx, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, seasonID int, entityKind string, entityID int) ([]*models.Payment, error) {
	return s.Store.List(ctx, seasonID, entityKind, entityID)
}

// RecordPayment appends an immutable payment receipt and posts the
// matching ledger credit in the same transaction. Payments are never
// edited or deleted; a mistake is corrected with a fresh entry.
func (s *PaymentService) RecordPayment(ctx context.Context, seasonID int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}

	var entityName, description string
	switch req.EntityKind {
	case models.EntityKindCustomer:
		customer, err := s.Customers.Get(ctx, req.EntityID)
		if err != nil {
			return nil, errors.New("customer not found")
		}
		entityName = customer.Name
		description = fmt.Sprintf("Payment received from %s", entityName)
	case models.EntityKindFarmer:
		farmer, err := s.Farmers.Get(ctx, req.EntityID)
		if err != nil {
			return nil, errors.New("farmer not found")
		}
		entityName = farmer.Name
		description = fmt.Sprintf("Payment made to %s", entityName)
	default:
		return nil, errors.New("entity kind must be customer or farmer")
	}

	paymentDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.PaymentDate)
	if err != nil {
		return nil, errors.New("payment date must be YYYY-MM-DD")
	}

	payment := &models.Payment{
		EntityKind:  req.EntityKind,
		EntityID:    req.EntityID,
		SeasonID:    seasonID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Mode:        req.Mode,
		Notes:       req.Notes,
	}

	err = s.Store.WithTx(ctx, func(ctx context.Context, tx repositories.PaymentTx) error {
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}
		_, err := tx.PostLedgerEntry(ctx, &models.CreateLedgerEntryRequest{
			EntityKind:    req.EntityKind,
			EntityID:      req.EntityID,
			SeasonID:      seasonID,
			EntryType:     models.LedgerEntryTypePayment,
			Description:   description,
			Credit:        req.Amount,
			ReferenceID:   &payment.ID,
			ReferenceType: models.LedgerRefPayment,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	payment.EntityName = entityName
	return payment, nil
}
