package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mango-backend/internal/models"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FarmerHandler struct {
	Service *services.FarmerService
}

func NewFarmerHandler(s *services.FarmerService) *FarmerHandler {
	return &FarmerHandler{Service: s}
}

func (h *FarmerHandler) CreateFarmer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFarmerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	farmer, err := h.Service.CreateFarmer(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, farmer)
}

func (h *FarmerHandler) GetFarmer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	farmer, err := h.Service.GetFarmer(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Farmer not found")
		return
	}

	utils.JSON(w, http.StatusOK, farmer)
}

func (h *FarmerHandler) ListFarmers(w http.ResponseWriter, r *http.Request) {
	farmers, err := h.Service.ListFarmers(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, farmers)
}

func (h *FarmerHandler) UpdateFarmer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateFarmerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	farmer, err := h.Service.UpdateFarmer(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, farmer)
}

func (h *FarmerHandler) DeleteFarmer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteFarmer(r.Context(), id); err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLedger returns the full transaction history for one farmer.
func (h *FarmerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	entries, err := h.Service.GetLedger(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, entries)
}
