package services

import (
	"context"
	"errors"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"
)

type EnquiryService struct {
	Repo *repositories.EnquiryRepository
}

func NewEnquiryService(repo *repositories.EnquiryRepository) *EnquiryService {
	return &EnquiryService{Repo: repo}
}

func (s *EnquiryService) CreateEnquiry(ctx context.Context, req *models.CreateEnquiryRequest) (*models.Enquiry, error) {
	if req.CustomerID == nil && req.Name == "" {
		return nil, errors.New("enquiry needs a customer or a name")
	}
	if req.Quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}
	requiredDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.RequiredDate)
	if err != nil {
		return nil, errors.New("required date must be YYYY-MM-DD")
	}

	enquiry := &models.Enquiry{
		CustomerID:    req.CustomerID,
		Name:          req.Name,
		Phone:         req.Phone,
		RequiredDate:  requiredDate,
		Type:          req.Type,
		PackageSizeID: req.PackageSizeID,
		Quantity:      req.Quantity,
		Status:        models.EnquiryStatusPending,
		Notes:         req.Notes,
	}
	if err := s.Repo.Create(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (s *EnquiryService) GetEnquiry(ctx context.Context, id int) (*models.Enquiry, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EnquiryService) ListEnquiries(ctx context.Context, status string) ([]*models.Enquiry, error) {
	return s.Repo.List(ctx, status)
}

func (s *EnquiryService) CountPending(ctx context.Context) (int, error) {
	return s.Repo.CountByStatus(ctx, models.EnquiryStatusPending)
}

func validEnquiryStatus(status string) bool {
	switch status {
	case models.EnquiryStatusPending, models.EnquiryStatusConfirmed,
		models.EnquiryStatusFulfilled, models.EnquiryStatusCancelled:
		return true
	}
	return false
}

func (s *EnquiryService) UpdateEnquiry(ctx context.Context, id int, req *models.UpdateEnquiryRequest) (*models.Enquiry, error) {
	enquiry, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("enquiry not found")
	}
	if req.CustomerID == nil && req.Name == "" {
		return nil, errors.New("enquiry needs a customer or a name")
	}
	if req.Quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}
	if !validEnquiryStatus(req.Status) {
		return nil, errors.New("invalid enquiry status")
	}
	requiredDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.RequiredDate)
	if err != nil {
		return nil, errors.New("required date must be YYYY-MM-DD")
	}

	enquiry.CustomerID = req.CustomerID
	enquiry.Name = req.Name
	enquiry.Phone = req.Phone
	enquiry.RequiredDate = requiredDate
	enquiry.Type = req.Type
	enquiry.PackageSizeID = req.PackageSizeID
	enquiry.Quantity = req.Quantity
	enquiry.Status = req.Status
	enquiry.Notes = req.Notes
	if err := s.Repo.Update(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (s *EnquiryService) DeleteEnquiry(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// ConvertToSale builds a sale request prefilled from the enquiry. The
// caller records the sale; fulfillment is marked inside that sale's
// transaction via the enquiry link.
func (s *EnquiryService) ConvertToSale(ctx context.Context, id int, ratePerDozen float64) (*models.CreateSaleRequest, error) {
	enquiry, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("enquiry not found")
	}
	if enquiry.Status == models.EnquiryStatusFulfilled {
		return nil, errors.New("enquiry already fulfilled")
	}
	if enquiry.Status == models.EnquiryStatusCancelled {
		return nil, errors.New("enquiry is cancelled")
	}
	if enquiry.CustomerID == nil {
		return nil, errors.New("link the enquiry to a customer before converting")
	}

	enquiryID := enquiry.ID
	return &models.CreateSaleRequest{
		CustomerID:    *enquiry.CustomerID,
		SaleDate:      timeutil.FormatIST(timeutil.Now(), timeutil.DateLayout),
		PaymentStatus: models.PaymentStatusPending,
		Notes:         enquiry.Notes,
		EnquiryID:     &enquiryID,
		Items: []models.SaleItemRequest{{
			PackageSizeID: enquiry.PackageSizeID,
			Quantity:      enquiry.Quantity,
			RatePerDozen:  ratePerDozen,
		}},
	}, nil
}
