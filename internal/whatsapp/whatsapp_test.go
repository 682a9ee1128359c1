package whatsapp

import (
	"testing"
	"time"

	"mango-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func testSale() *models.Sale {
	return &models.Sale{
		InvoiceNumber: "INV-7-0042",
		SaleDate:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount:   7600,
		AmountPaid:    5000,
		DeliveryCharge: 100,
		Items: []models.SaleItem{
			{PackageSizeName: "Dozen Box", Quantity: 5, RatePerDozen: 1500, Total: 7500},
		},
	}
}

func TestSaleSummaryWithBalance(t *testing.T) {
	msg := SaleSummary("Konkan Mangoes", testSale())

	assert.Contains(t, msg, "*Konkan Mangoes*")
	assert.Contains(t, msg, "Invoice: INV-7-0042")
	assert.Contains(t, msg, "Date: 15-Mar-2026")
	assert.Contains(t, msg, "Dozen Box x5 @ Rs.1500.00/dozen = Rs.7500.00")
	assert.Contains(t, msg, "Delivery: Rs.100.00")
	assert.Contains(t, msg, "*Total: Rs.7600.00*")
	assert.Contains(t, msg, "Balance due: Rs.2600.00")
	assert.NotContains(t, msg, "Fully paid")
}

func TestSaleSummaryFullyPaid(t *testing.T) {
	sale := testSale()
	sale.AmountPaid = sale.TotalAmount

	msg := SaleSummary("Konkan Mangoes", sale)

	assert.Contains(t, msg, "Fully paid")
	assert.NotContains(t, msg, "Balance due")
}

func TestShareLinkDomesticNumber(t *testing.T) {
	link := ShareLink("9876543210", "hello world")
	assert.Equal(t, "https://wa.me/919876543210?text=hello+world", link)
}

func TestShareLinkInternationalNumber(t *testing.T) {
	link := ShareLink("+919876543210", "hi")
	assert.Equal(t, "https://wa.me/919876543210?text=hi", link)
}

func TestShareLinkEmptyPhone(t *testing.T) {
	link := ShareLink("", "pick a chat")
	assert.Equal(t, "https://wa.me/?text=pick+a+chat", link)
}

func TestShareLinkEscapesMessage(t *testing.T) {
	link := ShareLink("9876543210", "Total: Rs.7600 & thanks")
	assert.Contains(t, link, "Total%3A+Rs.7600+%26+thanks")
}
