package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mango-backend/internal/cache"
	"mango-backend/internal/models"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ExpenseHandler struct {
	Service *services.ExpenseService
	Seasons *services.SeasonService
}

func NewExpenseHandler(s *services.ExpenseService, seasons *services.SeasonService) *ExpenseHandler {
	return &ExpenseHandler{Service: s, Seasons: seasons}
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	expense, err := h.Service.CreateExpense(r.Context(), season.ID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	expense, err := h.Service.GetExpense(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Expense not found")
		return
	}

	utils.JSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	expenses, err := h.Service.ListExpenses(r.Context(), season.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, expenses)
}

// GetCategoryTotals returns season expense totals grouped by category.
func (h *ExpenseHandler) GetCategoryTotals(w http.ResponseWriter, r *http.Request) {
	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	totals, err := h.Service.TotalsByCategory(r.Context(), season.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, totals)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Service.UpdateExpense(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteExpense(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
