package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"mango-backend/internal/cache"
	"mango-backend/internal/metrics"
	"mango-backend/internal/models"
	"mango-backend/internal/services"
	"mango-backend/internal/whatsapp"
	"mango-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SaleHandler struct {
	Service  *services.SaleService
	Seasons  *services.SeasonService
	Reports  *services.ReportService
	Settings *services.SettingService
}

func NewSaleHandler(s *services.SaleService, seasons *services.SeasonService, reports *services.ReportService, settings *services.SettingService) *SaleHandler {
	return &SaleHandler{Service: s, Seasons: seasons, Reports: reports, Settings: settings}
}

// RecordSale books a sale against the active season.
func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	sale, err := h.Service.RecordSale(r.Context(), season.ID, &req)
	if err != nil {
		h.writeSaleError(w, err)
		return
	}

	metrics.SalesRecorded.Inc()
	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusCreated, sale)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	sale, err := h.Service.GetSale(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Sale not found")
		return
	}

	utils.JSON(w, http.StatusOK, sale)
}

// ListSales lists sales for the active season, or for ?season_id=N.
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	seasonID, err := querySeasonID(r, h.Seasons)
	if err != nil {
		writeSeasonError(w, err)
		return
	}

	sales, err := h.Service.ListSales(r.Context(), seasonID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, sales)
}

func (h *SaleHandler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.Service.EditSale(r.Context(), id, &req)
	if err != nil {
		h.writeSaleError(w, err)
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteSale(r.Context(), id); err != nil {
		h.writeSaleError(w, err)
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// GetReceipt streams the sale receipt as a PDF download.
func (h *SaleHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pdf, err := h.Reports.SaleReceiptPDF(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", id))
	w.Write(pdf)
}

// GetShareLink returns a wa.me link with the invoice summary prefilled,
// addressed to the customer's phone when one is on file.
func (h *SaleHandler) GetShareLink(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	sale, err := h.Service.GetSale(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Sale not found")
		return
	}

	businessName := "Mango Trading"
	if setting, err := h.Settings.GetSetting(r.Context(), models.SettingKeyBusinessName); err == nil && setting.Value != "" {
		businessName = setting.Value
	}

	phone := ""
	if customer, err := h.Service.Customers.Get(r.Context(), sale.CustomerID); err == nil {
		phone = customer.Phone
	}

	message := whatsapp.SaleSummary(businessName, sale)
	utils.JSON(w, http.StatusOK, map[string]string{
		"message": message,
		"link":    whatsapp.ShareLink(phone, message),
	})
}

// writeSaleError maps service failures onto the HTTP taxonomy: a
// missing sale is 404, a stock shortage 409 (counted separately from
// validation failures), anything else a 400.
func (h *SaleHandler) writeSaleError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrSaleNotFound) {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		metrics.StockValidationFailures.Inc()
		utils.Error(w, http.StatusConflict, stockErr.Error())
		return
	}
	utils.Error(w, http.StatusBadRequest, err.Error())
}
