package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"mango-backend/internal/models"
	"mango-backend/internal/repositories"
	"mango-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

const defaultBusinessName = "Mango Trading"

// ReportService builds the season profit & loss rollup and renders it
// as JSON, CSV or PDF, and prints per-sale receipts.
type ReportService struct {
	Reports     *repositories.ReportRepository
	SeasonRepo  *repositories.SeasonRepository
	ExpenseRepo *repositories.ExpenseRepository
	StockRepo   *repositories.StockRepository
	LedgerRepo  *repositories.LedgerRepository
	SettingRepo *repositories.SettingRepository
	SaleStore   repositories.SaleStore
}

func NewReportService(
	reports *repositories.ReportRepository,
	seasonRepo *repositories.SeasonRepository,
	expenseRepo *repositories.ExpenseRepository,
	stockRepo *repositories.StockRepository,
	ledgerRepo *repositories.LedgerRepository,
	settingRepo *repositories.SettingRepository,
	saleStore repositories.SaleStore,
) *ReportService {
	return &ReportService{
		Reports:     reports,
		SeasonRepo:  seasonRepo,
		ExpenseRepo: expenseRepo,
		StockRepo:   stockRepo,
		LedgerRepo:  ledgerRepo,
		SettingRepo: settingRepo,
		SaleStore:   saleStore,
	}
}

func (s *ReportService) businessName(ctx context.Context) string {
	setting, err := s.SettingRepo.Get(ctx, models.SettingKeyBusinessName)
	if err != nil || setting == nil || setting.Value == "" {
		return defaultBusinessName
	}
	return setting.Value
}

// SeasonReport assembles the profit & loss view for one season. Profit
// is revenue minus purchase cost, expenses and season rent.
func (s *ReportService) SeasonReport(ctx context.Context, seasonID int) (*models.SeasonReport, error) {
	season, err := s.SeasonRepo.Get(ctx, seasonID)
	if err != nil {
		return nil, errors.New("season not found")
	}

	revenue, saleCount, err := s.Reports.SalesTotals(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	cost, purchaseCount, err := s.Reports.PurchaseTotals(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Reports.ExpenseTotal(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.ExpenseRepo.TotalsByCategory(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	stock, err := s.StockRepo.GetBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	customerOwed, err := s.LedgerRepo.TotalOutstanding(ctx, models.EntityKindCustomer)
	if err != nil {
		return nil, err
	}
	farmerOwed, err := s.LedgerRepo.TotalOutstanding(ctx, models.EntityKindFarmer)
	if err != nil {
		return nil, err
	}

	return &models.SeasonReport{
		Season:             season,
		SalesRevenue:       revenue,
		PurchaseCost:       cost,
		ExpenseTotal:       expenses,
		SeasonRent:         season.RentAmount,
		Profit:             revenue - cost - expenses - season.RentAmount,
		SaleCount:          saleCount,
		PurchaseCount:      purchaseCount,
		CustomerOwed:       customerOwed,
		FarmerOwed:         farmerOwed,
		Stock:              stock,
		ExpensesByCategory: byCategory,
	}, nil
}

// SeasonReportCSV renders the season report as a spreadsheet.
func (s *ReportService) SeasonReportCSV(ctx context.Context, seasonID int) ([]byte, error) {
	report, err := s.SeasonReport(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Season", report.Season.Name})
	w.Write([]string{"Period",
		report.Season.StartDate.Format("02-Jan-2006"),
		report.Season.EndDate.Format("02-Jan-2006")})
	w.Write(nil)

	w.Write([]string{"Metric", "Value"})
	w.Write([]string{"Sales Revenue", fmt.Sprintf("%.2f", report.SalesRevenue)})
	w.Write([]string{"Purchase Cost", fmt.Sprintf("%.2f", report.PurchaseCost)})
	w.Write([]string{"Expenses", fmt.Sprintf("%.2f", report.ExpenseTotal)})
	w.Write([]string{"Season Rent", fmt.Sprintf("%.2f", report.SeasonRent)})
	w.Write([]string{"Profit", fmt.Sprintf("%.2f", report.Profit)})
	w.Write([]string{"Sales Count", fmt.Sprintf("%d", report.SaleCount)})
	w.Write([]string{"Purchase Count", fmt.Sprintf("%d", report.PurchaseCount)})
	w.Write([]string{"Customers Owe", fmt.Sprintf("%.2f", report.CustomerOwed)})
	w.Write([]string{"Owed To Farmers", fmt.Sprintf("%.2f", report.FarmerOwed)})
	w.Write(nil)

	w.Write([]string{"Expense Category", "Amount"})
	for category, amount := range report.ExpensesByCategory {
		w.Write([]string{category, fmt.Sprintf("%.2f", amount)})
	}
	w.Write(nil)

	w.Write([]string{"Package", "Purchased", "Sold", "Available"})
	for _, l := range report.Stock {
		w.Write([]string{
			l.PackageSizeName,
			fmt.Sprintf("%d", l.Purchased),
			fmt.Sprintf("%d", l.Sold),
			fmt.Sprintf("%d", l.Available),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SeasonReportPDF renders the season report as a printable document.
func (s *ReportService) SeasonReportPDF(ctx context.Context, seasonID int) ([]byte, error) {
	report, err := s.SeasonReport(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Season Report", s.businessName(ctx)), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Season: %s (%s to %s)",
		report.Season.Name,
		report.Season.StartDate.Format("02-Jan-2006"),
		report.Season.EndDate.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Profit & Loss
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Profit & Loss", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	rows := []struct {
		label string
		value float64
	}{
		{"Sales Revenue", report.SalesRevenue},
		{"Purchase Cost", report.PurchaseCost},
		{"Expenses", report.ExpenseTotal},
		{"Season Rent", report.SeasonRent},
	}
	for _, row := range rows {
		pdf.CellFormat(95, 7, row.label, "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Rs. %.2f", row.value), "RB", 1, "R", false, 0, "")
	}

	if report.Profit >= 0 {
		pdf.SetFillColor(200, 255, 200)
	} else {
		pdf.SetFillColor(255, 200, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, fmt.Sprintf("Profit: Rs. %.2f", report.Profit), "1", 1, "C", true, 0, "")
	pdf.Ln(5)

	// Outstanding balances
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Outstanding", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Customers owe: Rs. %.2f", report.CustomerOwed), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Owed to farmers: Rs. %.2f", report.FarmerOwed), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Stock table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Stock", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Package", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Purchased", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Sold", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Available", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, l := range report.Stock {
		pdf.CellFormat(70, 6, l.PackageSizeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", l.Purchased), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", l.Sold), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", l.Available), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaleReceiptPDF renders the printable receipt for one sale.
func (s *ReportService) SaleReceiptPDF(ctx context.Context, saleID int) ([]byte, error) {
	sale, err := s.SaleStore.Get(ctx, saleID)
	if err != nil {
		return nil, errors.New("sale not found")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.businessName(ctx), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Invoice %s", sale.InvoiceNumber), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", sale.CustomerName), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", sale.SaleDate.Format("02-Jan-2006")), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(80, 7, "Package", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Rate/Dozen", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range sale.Items {
		pdf.CellFormat(80, 6, item.PackageSizeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", item.RatePerDozen), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", item.Total), "1", 1, "R", false, 0, "")
	}

	if sale.DeliveryCharge > 0 {
		pdf.CellFormat(150, 6, "Delivery Charge", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", sale.DeliveryCharge), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", sale.TotalAmount), "1", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "Paid", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", sale.AmountPaid), "1", 1, "R", false, 0, "")

	balance := sale.TotalAmount - sale.AmountPaid
	if balance > 0 {
		pdf.SetFillColor(255, 200, 200)
		pdf.CellFormat(190, 10, fmt.Sprintf("Balance Due: Rs. %.2f", balance), "1", 1, "C", true, 0, "")
	} else {
		pdf.SetFillColor(200, 255, 200)
		pdf.CellFormat(190, 10, "FULLY PAID", "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
