package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mango-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSaleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing sale", services.ErrSaleNotFound, http.StatusNotFound},
		{"stock shortage", &services.InsufficientStockError{
			PackageSizeID:   1,
			PackageSizeName: "Dozen Box",
			Requested:       15,
			Available:       10,
		}, http.StatusConflict},
		{"validation failure", errors.New("sale date must be YYYY-MM-DD"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &SaleHandler{}
			rec := httptest.NewRecorder()
			h.writeSaleError(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}
}

func TestWritePurchaseErrorStatusMapping(t *testing.T) {
	rec := httptest.NewRecorder()
	writePurchaseError(rec, services.ErrPurchaseNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	writePurchaseError(rec, errors.New("farmer not found"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuerySeasonIDRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"not a number", "season_id=abc"},
		{"zero", "season_id=0"},
		{"negative", "season_id=-2"},
		{"trailing garbage", "season_id=7x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/sales?"+tt.query, nil)
			_, err := querySeasonID(r, nil)
			assert.ErrorIs(t, err, errInvalidSeasonID)
		})
	}
}

func TestQuerySeasonIDParsesExplicitID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/sales?season_id=12", nil)
	id, err := querySeasonID(r, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, id)
}

func TestWriteSeasonErrorStatuses(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSeasonError(rec, errInvalidSeasonID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	writeSeasonError(rec, errors.New("no active season; start a season first"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
