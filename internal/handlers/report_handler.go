package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mango-backend/internal/cache"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"
)

const reportCacheTTL = 10 * time.Minute

type ReportHandler struct {
	Service *services.ReportService
	Seasons *services.SeasonService
}

func NewReportHandler(s *services.ReportService, seasons *services.SeasonService) *ReportHandler {
	return &ReportHandler{Service: s, Seasons: seasons}
}

// GetSeasonReport returns the season P&L summary. Redis-cached; trade
// mutations invalidate it.
func (h *ReportHandler) GetSeasonReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	seasonID, err := querySeasonID(r, h.Seasons)
	if err != nil {
		writeSeasonError(w, err)
		return
	}

	key := cache.SeasonReportKey(seasonID)
	if data, ok := cache.GetCached(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	report, err := h.Service.SeasonReport(ctx, seasonID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, _ := json.Marshal(report)
	cache.SetCached(ctx, key, data, reportCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}

// ExportSeasonReportCSV streams the season report as a CSV download.
func (h *ReportHandler) ExportSeasonReportCSV(w http.ResponseWriter, r *http.Request) {
	seasonID, err := querySeasonID(r, h.Seasons)
	if err != nil {
		writeSeasonError(w, err)
		return
	}

	data, err := h.Service.SeasonReportCSV(r.Context(), seasonID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=season-report-%d.csv", seasonID))
	w.Write(data)
}

// ExportSeasonReportPDF streams the season report as a PDF download.
func (h *ReportHandler) ExportSeasonReportPDF(w http.ResponseWriter, r *http.Request) {
	seasonID, err := querySeasonID(r, h.Seasons)
	if err != nil {
		writeSeasonError(w, err)
		return
	}

	data, err := h.Service.SeasonReportPDF(r.Context(), seasonID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=season-report-%d.pdf", seasonID))
	w.Write(data)
}

