package erp

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/workflow"
)

// EntryLine is one product row of a purchase/sales entry form
type EntryLine struct {
	ProductCd   string  `json:"productCd"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	WarehouseCd string  `json:"warehouseCd"`
	Remarks     string  `json:"remarks"`
}

// Entry is a purchase or sales entry as submitted from the portal form
type Entry struct {
	WorkflowType    models.WorkflowType `json:"workflowType"` // SALES | PURCHASE
	CustomerName    string              `json:"customerName"`
	RequestDate     string              `json:"requestDate"`
	Note            string              `json:"note"`
	WarehouseCd     string              `json:"warehouseCd"`
	DeliveryAddress *string             `json:"deliveryAddress,omitempty"`
	DeliveryContact *string             `json:"deliveryContact,omitempty"`
	DeliveryPhone   *string             `json:"deliveryPhone,omitempty"`
	Lines           []EntryLine         `json:"lines"`
}

// Service submits entries to the ERP and opens the matching fulfillment
// task. When the ERP is not configured the entry is still tracked
// locally so warehouse work is never blocked by the bridge.
type Service struct {
	client   *Client
	tasks    *workflow.Service
	disabled bool
}

// NewService creates the ERP bridge service
func NewService(client *Client, tasks *workflow.Service) *Service {
	disabled := client == nil || client.URL == ""
	if disabled {
		log.Println("ERP bridge disabled: ERP_URL not configured")
	}
	return &Service{client: client, tasks: tasks, disabled: disabled}
}

// Submit pushes the entry into the ERP and creates its fulfillment task
// in ERP_SUBMITTED. Returns the created task.
func (s *Service) Submit(entry *Entry) (*models.FulfillmentTask, error) {
	if entry.WorkflowType != models.WorkflowSales && entry.WorkflowType != models.WorkflowPurchase {
		return nil, fmt.Errorf("unknown workflow type %q", entry.WorkflowType)
	}
	if len(entry.Lines) == 0 {
		return nil, fmt.Errorf("entry needs at least one product line")
	}

	if !s.disabled {
		if _, err := s.client.Authenticate(); err != nil {
			return nil, err
		}
		model := "sale.order"
		if entry.WorkflowType == models.WorkflowPurchase {
			model = "purchase.order"
		}
		erpID, err := s.client.Create(model, map[string]interface{}{
			"partner_name": entry.CustomerName,
			"date_order":   entry.RequestDate,
			"note":         entry.Note,
		})
		if err != nil {
			return nil, fmt.Errorf("ERP submission failed: %w", err)
		}
		log.Printf("📨 ERP: %s record %d created for %s", model, erpID, entry.CustomerName)
	}

	task := &models.FulfillmentTask{
		WorkflowType:    entry.WorkflowType,
		Status:          models.StatusErpSubmitted,
		CustomerName:    entry.CustomerName,
		RequestDate:     entry.RequestDate,
		Note:            entry.Note,
		WarehouseCd:     entry.WarehouseCd,
		DeliveryAddress: entry.DeliveryAddress,
		DeliveryContact: entry.DeliveryContact,
		DeliveryPhone:   entry.DeliveryPhone,
	}
	for _, l := range entry.Lines {
		task.Items = append(task.Items, models.TaskItem{
			ProductCd:   l.ProductCd,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			WarehouseCd: l.WarehouseCd,
			Remarks:     l.Remarks,
		})
	}

	if err := s.tasks.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to open fulfillment task: %w", err)
	}
	return task, nil
}

// decodeRecords converts raw XML-RPC maps into a typed slice via JSON
func decodeRecords(raw []map[string]interface{}, result interface{}) error {
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal raw result: %w", err)
	}
	if err := json.Unmarshal(jsonData, result); err != nil {
		return fmt.Errorf("failed to unmarshal into target: %w", err)
	}
	return nil
}
