package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"mango-backend/internal/models"
)

// SaleSummary formats the share-out text for a sale: a short invoice
// recap the operator forwards to the customer.
func SaleSummary(businessName string, sale *models.Sale) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", businessName)
	fmt.Fprintf(&b, "Invoice: %s\n", sale.InvoiceNumber)
	fmt.Fprintf(&b, "Date: %s\n\n", sale.SaleDate.Format("02-Jan-2006"))

	for _, item := range sale.Items {
		fmt.Fprintf(&b, "%s x%d @ Rs.%.2f/dozen = Rs.%.2f\n",
			item.PackageSizeName, item.Quantity, item.RatePerDozen, item.Total)
	}
	if sale.DeliveryCharge > 0 {
		fmt.Fprintf(&b, "Delivery: Rs.%.2f\n", sale.DeliveryCharge)
	}

	fmt.Fprintf(&b, "\n*Total: Rs.%.2f*\n", sale.TotalAmount)
	if balance := sale.TotalAmount - sale.AmountPaid; balance > 0 {
		fmt.Fprintf(&b, "Paid: Rs.%.2f\n", sale.AmountPaid)
		fmt.Fprintf(&b, "Balance due: Rs.%.2f\n", balance)
	} else {
		b.WriteString("Fully paid. Thank you!\n")
	}
	return b.String()
}

// ShareLink builds a wa.me link that opens a chat with the message
// prefilled. Phone may be empty; WhatsApp then asks for a recipient.
func ShareLink(phone, message string) string {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if phone != "" && len(phone) == 10 {
		// Domestic numbers get the country prefix.
		phone = "91" + phone
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}
