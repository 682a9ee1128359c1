package services

import (
	"testing"

	"mango-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeStock(t *testing.T) {
	purchases := []models.PurchaseItem{
		{PackageSizeID: 1, Quantity: 10},
		{PackageSizeID: 1, Quantity: 5},
		{PackageSizeID: 2, Quantity: 8},
	}
	sales := []models.SaleItem{
		{PackageSizeID: 1, Quantity: 3},
		{PackageSizeID: 3, Quantity: 2},
	}

	stock := ComputeStock(purchases, sales)

	assert.Equal(t, 12, stock[1]) // 10 + 5 - 3
	assert.Equal(t, 8, stock[2])
	assert.Equal(t, -2, stock[3], "oversold packages go negative rather than vanish")
}

func TestComputeStockEmpty(t *testing.T) {
	assert.Empty(t, ComputeStock(nil, nil))
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{
		PackageSizeID:   1,
		PackageSizeName: "Dozen Box",
		Requested:       15,
		Available:       10,
	}
	assert.Equal(t, "insufficient stock for Dozen Box: requested 15, available 10", err.Error())
}

func TestValidateStockUsesReturnedQuantities(t *testing.T) {
	items := []models.SaleItem{{PackageSizeID: 1, PackageSizeName: "Dozen Box", Quantity: 10}}

	// 2 on hand is not enough on its own.
	err := validateStock(items, map[int]int{1: 2}, nil)
	assert.Error(t, err)

	// With the sale's own 8 back in the pool it passes.
	err = validateStock(items, map[int]int{1: 2}, map[int]int{1: 8})
	assert.NoError(t, err)
}
