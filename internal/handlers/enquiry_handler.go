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

type EnquiryHandler struct {
	Service *services.EnquiryService
}

func NewEnquiryHandler(s *services.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{Service: s}
}

func (h *EnquiryHandler) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	enquiry, err := h.Service.CreateEnquiry(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, enquiry)
}

func (h *EnquiryHandler) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	enquiry, err := h.Service.GetEnquiry(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Enquiry not found")
		return
	}

	utils.JSON(w, http.StatusOK, enquiry)
}

// ListEnquiries lists enquiries, optionally filtered by ?status=pending.
func (h *EnquiryHandler) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	enquiries, err := h.Service.ListEnquiries(r.Context(), status)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, enquiries)
}

func (h *EnquiryHandler) CountPending(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.CountPending(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{"pending": count})
}

func (h *EnquiryHandler) UpdateEnquiry(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	enquiry, err := h.Service.UpdateEnquiry(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, enquiry)
}

func (h *EnquiryHandler) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteEnquiry(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type convertEnquiryRequest struct {
	RatePerDozen float64 `json:"rate_per_dozen"`
}

// ConvertToSale returns a sale request prefilled from the enquiry. The
// frontend lets the operator adjust it before posting to the sales
// endpoint; the enquiry is marked fulfilled when that sale commits.
func (h *EnquiryHandler) ConvertToSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req convertEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saleReq, err := h.Service.ConvertToSale(r.Context(), id, req.RatePerDozen)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, saleReq)
}
