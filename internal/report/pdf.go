package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/workflow"
	qrcode "github.com/skip2/go-qrcode"
)

// MarketReportPDF renders a market report document: title, rate table,
// AI commentary. Returns the PDF bytes for storage or download.
func MarketReportPDF(title, reportDate string, quotes map[string]models.PriceQuote, commentary string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, reportDate, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Rate table
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(60, 8, "Symbol", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 8, "As of", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, symbol := range sortedSymbols(quotes) {
		q := quotes[symbol]
		pdf.CellFormat(60, 8, symbol, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", q.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 8, q.RateDate, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Commentary
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Market Commentary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, para := range strings.Split(commentary, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 5, para, "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// PickingSheetPDF renders the printable sheet for one fulfillment task.
// The QR code carries the task ID so a warehouse scanner can pull the
// task up without typing.
func PickingSheetPDF(task *models.FulfillmentTask) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	heading := "Picking Sheet"
	if task.IsPurchase() {
		heading = "Receiving Sheet"
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s - %s", heading, task.OrderNo), "", 1, "L", false, 0, "")

	// QR with the task reference, top-right
	qrPng, err := qrcode.Encode(fmt.Sprintf("bizportal:task:%d", task.ID), qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("task_qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("task_qr", 165, 15, 30, 30, false, opts, 0, "")

	label := workflow.LabelFor(task.Status)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Counterparty: %s", task.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Requested: %s    Status: %s", task.RequestDate, label.Label), "", 1, "L", false, 0, "")
	if task.DeliveryAddress != nil {
		pdf.CellFormat(0, 7, fmt.Sprintf("Deliver to: %s", *task.DeliveryAddress), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Line item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(30, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(15, 8, "Unit", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Remarks", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range task.Items {
		pdf.CellFormat(30, 8, item.ProductCd, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%.0f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 8, item.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, item.Remarks, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedSymbols(quotes map[string]models.PriceQuote) []string {
	symbols := make([]string, 0, len(quotes))
	for s := range quotes {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
