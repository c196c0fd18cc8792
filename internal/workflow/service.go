package workflow

import (
	"fmt"

	"github.com/mkglobal/bizportal/internal/database"
	"github.com/mkglobal/bizportal/internal/models"
	"gorm.io/gorm"
)

// MaxDocumentSize is the upload ceiling for attached documents (10 MiB)
const MaxDocumentSize = 10 << 20

// WarehouseGroup is the wire grouping of tasks by ERP warehouse code
type WarehouseGroup struct {
	WarehouseCd string                   `json:"warehouseCd"`
	TaskCount   int                      `json:"taskCount"`
	Tasks       []models.FulfillmentTask `json:"tasks"`
}

// Service owns fulfillment tasks and their attached documents. It is
// the single authority on status transitions.
type Service struct {
	db *database.DB
}

// NewService creates a fulfillment workflow service
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// ListGroups returns tasks grouped by warehouse code. Without
// includeCompleted, terminal tasks (DELIVERED/STOCKED) are filtered out
// so the active work list stays short.
func (s *Service) ListGroups(includeCompleted bool) ([]WarehouseGroup, error) {
	query := s.db.Preload("Items").Order("created_at DESC")
	if !includeCompleted {
		terminal := make([]models.TaskStatus, 0, len(TerminalStatuses))
		for st := range TerminalStatuses {
			terminal = append(terminal, st)
		}
		query = query.Where("status NOT IN ?", terminal)
	}

	var tasks []models.FulfillmentTask
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	// Group in first-seen order so the response is stable
	byCode := make(map[string]int)
	groups := make([]WarehouseGroup, 0)
	for _, t := range tasks {
		idx, ok := byCode[t.WarehouseCd]
		if !ok {
			idx = len(groups)
			byCode[t.WarehouseCd] = idx
			groups = append(groups, WarehouseGroup{WarehouseCd: t.WarehouseCd})
		}
		groups[idx].Tasks = append(groups[idx].Tasks, t)
		groups[idx].TaskCount++
	}
	return groups, nil
}

// GetTask loads one task with its line items
func (s *Service) GetTask(id uint) (*models.FulfillmentTask, error) {
	var task models.FulfillmentTask
	if err := s.db.Preload("Items").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask persists a task entering the workflow (normally from an
// ERP submission, already in ERP_SUBMITTED).
func (s *Service) CreateTask(task *models.FulfillmentTask) error {
	if task.Status == "" {
		task.Status = models.StatusErpSubmitted
	}
	if !IsValidStatus(task.WorkflowType, task.Status) {
		return fmt.Errorf("status %q is not part of the %s lifecycle", task.Status, task.WorkflowType)
	}
	return s.db.Create(task).Error
}

// UpdateTask applies edits to the descriptive fields of a task. Status
// and workflow type are not editable here; status moves only through
// Transition.
func (s *Service) UpdateTask(id uint, updates map[string]interface{}) (*models.FulfillmentTask, error) {
	delete(updates, "status")
	delete(updates, "workflow_type")
	delete(updates, "workflowType")

	var task models.FulfillmentTask
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.GetTask(id)
}

// DeleteTask removes a task and its line items
func (s *Service) DeleteTask(id uint) error {
	var task models.FulfillmentTask
	if err := s.db.First(&task, id).Error; err != nil {
		return err
	}
	return s.db.Select("Items").Delete(&task).Error
}

// Transition resolves a next/prev intent against the transition table
// and persists the new status. On an illegal intent the task is left
// untouched and the table's message is returned for the operator.
func (s *Service) Transition(id uint, action Action) (*models.FulfillmentTask, error) {
	var task models.FulfillmentTask
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}

	next, err := Apply(task.WorkflowType, task.Status, action)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&task).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("failed to persist transition: %w", err)
	}
	task.Status = next
	return &task, nil
}

// ListDocuments returns the documents attached to a task
func (s *Service) ListDocuments(taskID uint) ([]models.CoaDocument, error) {
	var docs []models.CoaDocument
	if err := s.db.Where("task_id = ?", taskID).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	return docs, nil
}

// AddDocument stores an uploaded document and bumps the owning task's
// denormalized document count in the same transaction, so the list
// badge and the detail view cannot drift apart.
func (s *Service) AddDocument(taskID uint, doc *models.CoaDocument, content []byte) (*models.CoaDocument, error) {
	if int64(len(content)) > MaxDocumentSize {
		return nil, fmt.Errorf("file exceeds the %d MiB upload limit", MaxDocumentSize>>20)
	}

	doc.TaskID = taskID
	doc.FileSize = int64(len(content))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.FulfillmentTask
		if err := tx.First(&task, taskID).Error; err != nil {
			return err
		}
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		return syncDocumentCount(tx, taskID)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes a document and re-syncs the owner's count.
// The removed record is returned so the caller can clean up external
// storage the row pointed at.
func (s *Service) DeleteDocument(docID uint) (*models.CoaDocument, error) {
	var doc models.CoaDocument
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, docID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&doc).Error; err != nil {
			return err
		}
		return syncDocumentCount(tx, doc.TaskID)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// syncDocumentCount recomputes the denormalized count from the document
// rows instead of incrementing, so a drifted value self-heals on the
// next mutation.
func syncDocumentCount(tx *gorm.DB, taskID uint) error {
	var count int64
	if err := tx.Model(&models.CoaDocument{}).Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.FulfillmentTask{}).Where("id = ?", taskID).
		Update("document_count", count).Error
}
