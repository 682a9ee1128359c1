package handlers

import (
	"net/http"
	"strconv"

	"mango-backend/internal/models"
	"mango-backend/internal/services"
	"mango-backend/pkg/utils"
)

type LedgerHandler struct {
	Service *services.LedgerService
	Seasons *services.SeasonService
}

func NewLedgerHandler(s *services.LedgerService, seasons *services.SeasonService) *LedgerHandler {
	return &LedgerHandler{Service: s, Seasons: seasons}
}

// ListEntries returns ledger entries filtered by the query parameters:
// entity_kind, entity_id, entry_type, season_id (defaults to active).
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := &models.LedgerFilter{
		EntityKind: q.Get("entity_kind"),
		EntryType:  models.LedgerEntryType(q.Get("entry_type")),
	}
	filter.EntityID, _ = strconv.Atoi(q.Get("entity_id"))

	seasonID, err := querySeasonID(r, h.Seasons)
	if err != nil {
		writeSeasonError(w, err)
		return
	}
	filter.SeasonID = seasonID

	entries, err := h.Service.GetEntries(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, entries)
}

// ListDebtors returns all entities of a kind with a positive outstanding
// balance, largest first.
func (h *LedgerHandler) ListDebtors(w http.ResponseWriter, r *http.Request) {
	entityKind := r.URL.Query().Get("entity_kind")
	if entityKind == "" {
		entityKind = models.EntityKindCustomer
	}

	debtors, err := h.Service.Debtors(r.Context(), entityKind)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, debtors)
}

func (h *LedgerHandler) GetTotalOutstanding(w http.ResponseWriter, r *http.Request) {
	entityKind := r.URL.Query().Get("entity_kind")
	if entityKind == "" {
		entityKind = models.EntityKindCustomer
	}

	total, err := h.Service.TotalOutstanding(r.Context(), entityKind)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]float64{"total_outstanding": total})
}
