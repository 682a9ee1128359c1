package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"mango-backend/internal/cache"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"
)

const dashboardCacheTTL = time.Minute

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// GetSummary returns the home-screen snapshot in one request: today's
// totals, season aggregates, outstanding balances, pending enquiries
// and stock. Redis-cached with a short TTL.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if data, ok := cache.GetCached(ctx, cache.DashboardKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	summary, err := h.Service.Summary(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, _ := json.Marshal(summary)
	cache.SetCached(ctx, cache.DashboardKey, data, dashboardCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}
