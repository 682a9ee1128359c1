package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"mango-backend/internal/cache"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"
)

const stockCacheTTL = 2 * time.Minute

type StockHandler struct {
	Service *services.StockService
	Seasons *services.SeasonService
}

func NewStockHandler(s *services.StockService, seasons *services.SeasonService) *StockHandler {
	return &StockHandler{Service: s, Seasons: seasons}
}

// GetStock returns per-package stock levels for the active season.
// Redis-cached; every trade mutation invalidates the key.
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	season, err := h.Seasons.ActiveSeason(ctx)
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	key := cache.StockKey(season.ID)
	if data, ok := cache.GetCached(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	levels, err := h.Service.GetStock(ctx, season.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, _ := json.Marshal(levels)
	cache.SetCached(ctx, key, data, stockCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}

// VerifyStock cross-checks the incremental counters against a full scan
// of purchase and sale items and reports any mismatches.
func (h *StockHandler) VerifyStock(w http.ResponseWriter, r *http.Request) {
	season, err := h.Seasons.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	mismatches, err := h.Service.Verify(r.Context(), season.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"consistent": len(mismatches) == 0,
		"mismatches": mismatches,
	})
}

// RecomputeStock rebuilds the counters from purchase and sale items.
// Accepts ?season_id=N for closed seasons.
func (h *StockHandler) RecomputeStock(w http.ResponseWriter, r *http.Request) {
	seasonID, err := querySeasonID(r, h.Seasons)
	if err != nil {
		writeSeasonError(w, err)
		return
	}

	if err := h.Service.Recompute(r.Context(), seasonID); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	cache.InvalidateTradeCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"status": "recomputed"})
}
