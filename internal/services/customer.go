package services

import (
	"context"
	"errors"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
)

type CustomerService struct {
	Repo   *repositories.CustomerRepository
	Ledger *repositories.LedgerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository, ledger *repositories.LedgerRepository) *CustomerService {
	return &CustomerService{Repo: repo, Ledger: ledger}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Type:    req.Type,
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns the customer with balance fields folded from their
// ledger entries.
func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	customer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	balance, err := s.Ledger.GetEntityBalance(ctx, models.EntityKindCustomer, id)
	if err != nil {
		return nil, err
	}
	customer.TotalOutstanding = balance.TotalCredit
	customer.TotalPaid = balance.TotalPaid
	customer.Outstanding = balance.Outstanding
	return customer, nil
}

// ListCustomers returns all customers sorted by name with balances
// attached from a single bulk ledger query.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.Ledger.GetAllBalances(ctx, models.EntityKindCustomer)
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		if b, ok := balances[c.ID]; ok {
			c.TotalOutstanding = b.TotalCredit
			c.TotalPaid = b.TotalPaid
			c.Outstanding = b.Outstanding
		}
	}
	return customers, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	customer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.Type = req.Type
	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, id)
}

// DeleteCustomer removes a customer. Refused while the customer still
// owes money.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	balance, err := s.Ledger.GetEntityBalance(ctx, models.EntityKindCustomer, id)
	if err != nil {
		return err
	}
	if balance.Outstanding > 0 {
		return errors.New("customer has an outstanding balance")
	}
	return s.Repo.Delete(ctx, id)
}

// GetLedger returns the customer's full entry stream, newest first.
func (s *CustomerService) GetLedger(ctx context.Context, id int) ([]models.LedgerEntry, error) {
	return s.Ledger.GetAll(ctx, &models.LedgerFilter{
		EntityKind: models.EntityKindCustomer,
		EntityID:   id,
	})
}
