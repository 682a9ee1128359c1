package services

import (
	"testing"

	"mango-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFoldBalanceSeparatesPayments(t *testing.T) {
	entries := []models.LedgerEntry{
		{EntryType: models.LedgerEntryTypeSale, Debit: 7600},
		{EntryType: models.LedgerEntryTypePayment, Credit: 5000},
	}

	b := FoldBalance(models.EntityKindCustomer, 1, entries)

	assert.Equal(t, 7600.0, b.TotalCredit)
	assert.Equal(t, 5000.0, b.TotalPaid)
	assert.Equal(t, 2600.0, b.Outstanding)
	assert.Equal(t, 2, b.EntryCount)
}

func TestFoldBalanceClampsReversalBeyondCredit(t *testing.T) {
	// A reversal can exceed the surviving credit when earlier entries
	// were already compensated. The exposed total clamps at zero.
	entries := []models.LedgerEntry{
		{EntryType: models.LedgerEntryTypePurchase, Debit: 5000},
		{EntryType: models.LedgerEntryTypePurchaseReversal, Credit: 8000},
	}

	b := FoldBalance(models.EntityKindFarmer, 3, entries)

	assert.Equal(t, 0.0, b.TotalCredit, "net credit below zero must expose as zero")
	assert.Equal(t, 0.0, b.TotalPaid)
	assert.Equal(t, 0.0, b.Outstanding)
}

func TestFoldBalanceEditDeltas(t *testing.T) {
	entries := []models.LedgerEntry{
		{EntryType: models.LedgerEntryTypeSale, Debit: 1000},
		{EntryType: models.LedgerEntryTypeSaleEdit, Credit: 200},
		{EntryType: models.LedgerEntryTypePayment, Credit: 300},
	}

	b := FoldBalance(models.EntityKindCustomer, 2, entries)

	assert.Equal(t, 800.0, b.TotalCredit)
	assert.Equal(t, 300.0, b.TotalPaid)
	assert.Equal(t, 500.0, b.Outstanding)
}

func TestFoldBalanceEmpty(t *testing.T) {
	b := FoldBalance(models.EntityKindCustomer, 5, nil)

	assert.Equal(t, 0.0, b.TotalCredit)
	assert.Equal(t, 0.0, b.TotalPaid)
	assert.Equal(t, 0.0, b.Outstanding)
	assert.Equal(t, 0, b.EntryCount)
}

func TestSortDebtorsByOutstanding(t *testing.T) {
	// A heavily paid-down large account ranks below a fully unpaid
	// smaller one.
	balances := []models.EntityBalance{
		{EntityID: 1, TotalCredit: 10000, TotalPaid: 9500, Outstanding: 500},
		{EntityID: 2, TotalCredit: 3000, TotalPaid: 0, Outstanding: 3000},
		{EntityID: 3, TotalCredit: 4000, TotalPaid: 2500, Outstanding: 1500},
	}

	sortDebtors(balances)

	assert.Equal(t, []int{2, 3, 1}, []int{balances[0].EntityID, balances[1].EntityID, balances[2].EntityID})
}
