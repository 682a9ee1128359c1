package handlers

import (
	"encoding/json"
	"net/http"

	"mango-backend/internal/models"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SettingHandler struct {
	Service *services.SettingService
}

func NewSettingHandler(s *services.SettingService) *SettingHandler {
	return &SettingHandler{Service: s}
}

// ListSettings returns all settings with the PIN value masked.
func (h *SettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.ListSettings(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, settings)
}

func (h *SettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req models.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.UpdateSetting(r.Context(), key, req.Value); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
