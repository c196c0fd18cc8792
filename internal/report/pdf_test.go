package report

import (
	"bytes"
	"testing"

	"github.com/mkglobal/bizportal/internal/models"
)

func TestPickingSheetPDF(t *testing.T) {
	addr := "서울시 강남구 테헤란로 1"
	task := &models.FulfillmentTask{
		ID:              42,
		OrderNo:         "SHP20250901-TEST",
		WorkflowType:    models.WorkflowSales,
		Status:          models.StatusPicking,
		CustomerName:    "한빛케미칼",
		RequestDate:     "2025-09-01",
		DeliveryAddress: &addr,
		Items: []models.TaskItem{
			{ProductCd: "CHEM-001", Description: "Caustic Soda 50%", Quantity: 20, Unit: "DRUM"},
			{ProductCd: "CHEM-002", Description: "Acetic Acid", Quantity: 5, Unit: "IBC"},
		},
	}

	pdf, err := PickingSheetPDF(task)
	if err != nil {
		t.Fatalf("PickingSheetPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}
	if len(pdf) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(pdf))
	}
}

func TestMarketReportPDF(t *testing.T) {
	quotes := map[string]models.PriceQuote{
		"USD_KRW": {Symbol: "USD_KRW", Rate: 1388.25, RateDate: "2025-09-01"},
		"CNY_KRW": {Symbol: "CNY_KRW", Rate: 194.80, RateDate: "2025-09-01"},
	}

	pdf, err := MarketReportPDF("Market Report 2025-09-01", "2025-09-01", quotes, "Rates held steady.\n\nImport costs unchanged.")
	if err != nil {
		t.Fatalf("MarketReportPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}
}
