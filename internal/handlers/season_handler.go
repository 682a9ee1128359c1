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

type SeasonHandler struct {
	Service *services.SeasonService
}

func NewSeasonHandler(s *services.SeasonService) *SeasonHandler {
	return &SeasonHandler{Service: s}
}

// StartSeason creates a new season and makes it the active one.
func (h *SeasonHandler) StartSeason(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	season, err := h.Service.StartSeason(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateSeasonCaches(r.Context())
	utils.JSON(w, http.StatusCreated, season)
}

func (h *SeasonHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	season, err := h.Service.GetSeason(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Season not found")
		return
	}

	utils.JSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) GetActiveSeason(w http.ResponseWriter, r *http.Request) {
	season, err := h.Service.ActiveSeason(r.Context())
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.Service.ListSeasons(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, seasons)
}

func (h *SeasonHandler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	season, err := h.Service.ActivateSeason(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateSeasonCaches(r.Context())
	utils.JSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	season, err := h.Service.UpdateSeason(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateSeasonCaches(r.Context())
	utils.JSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteSeason(r.Context(), id); err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	cache.InvalidateSeasonCaches(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
