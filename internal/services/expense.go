package services

import (
	"context"
	"errors"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"
)

type ExpenseService struct {
	Repo *repositories.ExpenseRepository
}

func NewExpenseService(repo *repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{Repo: repo}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, seasonID int, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if req.Category == "" {
		return nil, errors.New("category is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	expenseDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.ExpenseDate)
	if err != nil {
		return nil, errors.New("expense date must be YYYY-MM-DD")
	}

	expense := &models.Expense{
		SeasonID:    seasonID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
	}
	if err := s.Repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, id int) (*models.Expense, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ExpenseService) ListExpenses(ctx context.Context, seasonID int) ([]*models.Expense, error) {
	return s.Repo.List(ctx, seasonID)
}

func (s *ExpenseService) TotalsByCategory(ctx context.Context, seasonID int) (map[string]float64, error) {
	return s.Repo.TotalsByCategory(ctx, seasonID)
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, id int, req *models.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, errors.New("expense not found")
	}
	if req.Category == "" {
		return nil, errors.New("category is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	expenseDate, err := timeutil.ParseInIST(timeutil.DateLayout, req.ExpenseDate)
	if err != nil {
		return nil, errors.New("expense date must be YYYY-MM-DD")
	}

	expense.Category = req.Category
	expense.Description = req.Description
	expense.Amount = req.Amount
	expense.ExpenseDate = expenseDate
	if err := s.Repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
