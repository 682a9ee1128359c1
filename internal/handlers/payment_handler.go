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

type PaymentHandler struct {
	Service *services.PaymentService
	Seasons *services.SeasonService
}

func NewPaymentHandler(s *services.PaymentService, seasons *services.SeasonService) *PaymentHandler {
	return &PaymentHandler{Service: s, Seasons: seasons}
}

// RecordPayment books a payment against the active season. Payments are
// final: there is no update or delete.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	payment, err := h.Service.RecordPayment(r.Context(), season.ID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	payment, err := h.Service.GetPayment(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Payment not found")
		return
	}

	utils.JSON(w, http.StatusOK, payment)
}

// ListPayments lists payments for the active season, optionally filtered
// by ?entity_kind=customer&entity_id=N.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	entityKind := r.URL.Query().Get("entity_kind")
	entityID, _ := strconv.Atoi(r.URL.Query().Get("entity_id"))

	payments, err := h.Service.ListPayments(r.Context(), season.ID, entityKind, entityID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, payments)
}
