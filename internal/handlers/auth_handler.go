package handlers

import (
	"encoding/json"
	"net/http"

	"mango-backend/internal/services"
	"mango-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

type loginRequest struct {
	PIN string `json:"pin"`
}

type changePINRequest struct {
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin"`
}

// Login verifies the operator PIN and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.Service.Login(r.Context(), req.PIN)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	var req changePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.ChangePIN(r.Context(), req.CurrentPIN, req.NewPIN); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "pin updated"})
}
