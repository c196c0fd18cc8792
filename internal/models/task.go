package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkflowType defines the direction of a fulfillment task
type WorkflowType string

const (
	WorkflowSales    WorkflowType = "SALES"    // outbound: shipment to a customer
	WorkflowPurchase WorkflowType = "PURCHASE" // inbound: receipt from a supplier
)

// TaskStatus is the server-owned status of a fulfillment task.
// Transitions between statuses go through workflow.Transitions only.
type TaskStatus string

const (
	StatusErpSubmitted TaskStatus = "ERP_SUBMITTED"

	// Outbound (SALES) lifecycle
	StatusShippingOrder TaskStatus = "SHIPPING_ORDER"
	StatusPicking       TaskStatus = "PICKING"
	StatusShipped       TaskStatus = "SHIPPED"
	StatusDelivered     TaskStatus = "DELIVERED"

	// Inbound (PURCHASE) lifecycle
	StatusReceivingScheduled TaskStatus = "RECEIVING_SCHEDULED"
	StatusInspecting         TaskStatus = "INSPECTING"
	StatusReceived           TaskStatus = "RECEIVED"
	StatusStocked            TaskStatus = "STOCKED"
)

// FulfillmentTask represents one outbound (sales) or inbound (purchase)
// order tracked through a warehouse.
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type FulfillmentTask struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	OrderNo     string       `gorm:"index" json:"orderNo"`
	WorkflowType WorkflowType `gorm:"not null;index" json:"workflowType"` // SALES | PURCHASE
	Status      TaskStatus   `gorm:"not null;index;default:'ERP_SUBMITTED'" json:"status"`

	CustomerName string `gorm:"index" json:"customerName"`
	RequestDate  string `json:"requestDate"`
	Note         string `gorm:"type:text" json:"note"`

	// Delivery fields are present for outbound delivery tasks only
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	DeliveryContact *string `json:"deliveryContact,omitempty"`
	DeliveryPhone   *string `json:"deliveryPhone,omitempty"`

	WarehouseCd string `gorm:"index" json:"warehouseCd"`

	// Denormalized: maintained in the same transaction as document
	// creation/deletion so the list badge matches the detail view.
	DocumentCount int `gorm:"default:0" json:"documentCount"`

	Items []TaskItem `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for FulfillmentTask model
func (FulfillmentTask) TableName() string {
	return "fulfillment_tasks"
}

// BeforeCreate generates an order number when none was assigned upstream
func (t *FulfillmentTask) BeforeCreate(tx *gorm.DB) error {
	if t.OrderNo == "" {
		prefix := "SHP"
		if t.WorkflowType == WorkflowPurchase {
			prefix = "RCV"
		}
		t.OrderNo = generateOrderNo(prefix)
	}
	return nil
}

// IsSales returns true for outbound tasks
func (t *FulfillmentTask) IsSales() bool {
	return t.WorkflowType == WorkflowSales
}

// IsPurchase returns true for inbound tasks
func (t *FulfillmentTask) IsPurchase() bool {
	return t.WorkflowType == WorkflowPurchase
}

// TaskItem is one product row of a fulfillment task. Items are an
// immutable snapshot as entered at ERP submission time.
type TaskItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	TaskID      uint    `gorm:"not null;index" json:"taskId"`
	ProductCd   string  `gorm:"index" json:"productCd"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `gorm:"default:'EA'" json:"unit"`
	WarehouseCd string  `json:"warehouseCd"`
	Remarks     string  `json:"remarks"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for TaskItem model
func (TaskItem) TableName() string {
	return "task_items"
}

// generateOrderNo creates a unique order number
func generateOrderNo(prefix string) string {
	return prefix + time.Now().Format("20060102") + "-" + randomSuffix(4)
}

// randomSuffix generates a short random string for order numbers
func randomSuffix(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	now := time.Now().UnixNano()
	for i := 0; i < length; i++ {
		result[i] = charset[(now+int64(i*7))%int64(len(charset))]
	}
	return string(result)
}
