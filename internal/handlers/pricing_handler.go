package handlers

import (
	"net/http"
	"strconv"

	"mango-backend/internal/services"
	"mango-backend/pkg/utils"
)

type PricingHandler struct {
	Service *services.PricingService
	Seasons *services.SeasonService
}

func NewPricingHandler(s *services.PricingService, seasons *services.SeasonService) *PricingHandler {
	return &PricingHandler{Service: s, Seasons: seasons}
}

// SuggestPrice returns a selling rate suggestion for one package size,
// derived from the latest buying rate plus the configured margin.
func (h *PricingHandler) SuggestPrice(w http.ResponseWriter, r *http.Request) {
	packageSizeID, err := strconv.Atoi(r.URL.Query().Get("package_size_id"))
	if err != nil || packageSizeID <= 0 {
		utils.Error(w, http.StatusBadRequest, "package_size_id parameter is required")
		return
	}

	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	suggestion, err := h.Service.Suggest(r.Context(), season.ID, packageSizeID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, suggestion)
}
