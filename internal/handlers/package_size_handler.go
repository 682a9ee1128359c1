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

type PackageSizeHandler struct {
	Service *services.PackageSizeService
}

func NewPackageSizeHandler(s *services.PackageSizeService) *PackageSizeHandler {
	return &PackageSizeHandler{Service: s}
}

func (h *PackageSizeHandler) CreatePackageSize(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePackageSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	size, err := h.Service.CreatePackageSize(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, size)
}

func (h *PackageSizeHandler) GetPackageSize(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	size, err := h.Service.GetPackageSize(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Package size not found")
		return
	}

	utils.JSON(w, http.StatusOK, size)
}

// ListPackageSizes returns active sizes by default; pass ?all=true to
// include deactivated ones.
func (h *PackageSizeHandler) ListPackageSizes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	sizes, err := h.Service.ListPackageSizes(r.Context(), activeOnly)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, sizes)
}

func (h *PackageSizeHandler) UpdatePackageSize(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdatePackageSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	size, err := h.Service.UpdatePackageSize(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, size)
}

func (h *PackageSizeHandler) DeletePackageSize(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeletePackageSize(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
