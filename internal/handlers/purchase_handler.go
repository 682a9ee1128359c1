package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mango-backend/internal/cache"
	"mango-backend/internal/metrics"
	"mango-backend/internal/models"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PurchaseHandler struct {
	Service *services.PurchaseService
	Seasons *services.SeasonService
}

func NewPurchaseHandler(s *services.PurchaseService, seasons *services.SeasonService) *PurchaseHandler {
	return &PurchaseHandler{Service: s, Seasons: seasons}
}

// RecordPurchase books a purchase against the active season.
func (h *PurchaseHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	purchase, err := h.Service.RecordPurchase(r.Context(), season.ID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.PurchasesRecorded.Inc()
	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusCreated, purchase)
}

func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	purchase, err := h.Service.GetPurchase(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Purchase not found")
		return
	}

	utils.JSON(w, http.StatusOK, purchase)
}

// ListPurchases lists purchases for the active season, or for
// ?season_id=N when given.
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	seasonID, err := querySeasonID(r, h.Seasons)
	if err != nil {
		writeSeasonError(w, err)
		return
	}

	purchases, err := h.Service.ListPurchases(r.Context(), seasonID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, purchases)
}

func (h *PurchaseHandler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase, err := h.Service.EditPurchase(r.Context(), id, &req)
	if err != nil {
		writePurchaseError(w, err)
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusOK, purchase)
}

func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeletePurchase(r.Context(), id); err != nil {
		writePurchaseError(w, err)
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// writePurchaseError maps service failures onto the HTTP taxonomy: a
// missing purchase is 404, anything else a validation 400.
func writePurchaseError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrPurchaseNotFound) {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	utils.Error(w, http.StatusBadRequest, err.Error())
}
