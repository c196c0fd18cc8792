package erp

import (
	"strings"
	"testing"

	"github.com/mkglobal/bizportal/internal/models"
)

func TestSubmitValidation(t *testing.T) {
	svc := NewService(nil, nil) // bridge disabled, validation only

	tests := []struct {
		name    string
		entry   Entry
		wantErr string
	}{
		{
			"unknown workflow type",
			Entry{WorkflowType: "TRANSFER", Lines: []EntryLine{{ProductCd: "P1", Quantity: 1}}},
			"unknown workflow type",
		},
		{
			"missing lines",
			Entry{WorkflowType: models.WorkflowSales},
			"at least one product line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(&tt.entry)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
