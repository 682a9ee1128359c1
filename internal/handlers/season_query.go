package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mango-backend/internal/services"
	"mango-backend/pkg/utils"
)

var errInvalidSeasonID = errors.New("season_id must be a positive integer")

// querySeasonID resolves the season scope for a read: an explicit
// ?season_id=N wins, otherwise the active season. A malformed season_id
// is rejected rather than silently falling back to the active season.
func querySeasonID(r *http.Request, seasons *services.SeasonService) (int, error) {
	if idStr := r.URL.Query().Get("season_id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return 0, errInvalidSeasonID
		}
		return id, nil
	}
	season, err := seasons.ActiveSeason(r.Context())
	if err != nil {
		return 0, err
	}
	return season.ID, nil
}

// writeSeasonError maps season resolution failures: bad query input is
// the client's fault, a missing active season is a state conflict.
func writeSeasonError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidSeasonID) {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.Error(w, http.StatusConflict, err.Error())
}
