package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/report"
	"github.com/mkglobal/bizportal/internal/workflow"
)

// listWarehouseOps returns fulfillment tasks grouped by warehouse code.
// ?include_completed=true adds terminal tasks for the history view.
func (r *Router) listWarehouseOps(w http.ResponseWriter, req *http.Request) {
	includeCompleted := req.URL.Query().Get("include_completed") == "true"

	groups, err := r.tasks.ListGroups(includeCompleted)
	if err != nil {
		log.Printf("❌ Failed to list tasks: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch fulfillment tasks")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"warehouses": groups,
	})
}

// getWarehouseOp returns one task with items and status descriptor
func (r *Router) getWarehouseOp(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	task, err := r.tasks.GetTask(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"task":           task,
		"statusLabel":    workflow.LabelFor(task.Status),
		"allowedActions": workflow.AllowedActions(task.WorkflowType, task.Status),
	})
}

// processTaskRequest is the transition intent body
type processTaskRequest struct {
	Action workflow.Action `json:"action"` // "next" | "prev"
}

// processTask advances or reverts a task's status. The transition table
// is the sole authority; an illegal intent changes nothing and returns
// the table's message for the operator.
func (r *Router) processTask(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var body processTaskRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Action != workflow.ActionNext && body.Action != workflow.ActionPrev {
		respondError(w, http.StatusBadRequest, "action must be \"next\" or \"prev\"")
		return
	}

	task, err := r.tasks.Transition(id, body.Action)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log.Printf("🔄 Task %d (%s) → %s", task.ID, task.OrderNo, task.Status)
	r.broadcast("task.transitioned", map[string]interface{}{
		"taskId": task.ID,
		"status": task.Status,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   task,
	})
}

// listTaskDocuments returns the documents attached to a task
func (r *Router) listTaskDocuments(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	docs, err := r.tasks.ListDocuments(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}
	respondData(w, http.StatusOK, docs)
}

// uploadDocumentRequest carries one base64-encoded attachment
type uploadDocumentRequest struct {
	FileName      string  `json:"fileName"`
	ContentBase64 string  `json:"contentBase64"`
	ContentType   string  `json:"contentType"`
	DocType       string  `json:"docType"`
	Note          *string `json:"note,omitempty"`
}

// uploadTaskDocument stores an attachment, pushes the bytes to Dropbox
// when configured, and bumps the task's document count. The size
// ceiling is enforced before anything leaves the process.
func (r *Router) uploadTaskDocument(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	// Base64 inflates by 4/3; twice the ceiling leaves room for the
	// JSON envelope while still bounding memory.
	req.Body = http.MaxBytesReader(w, req.Body, workflow.MaxDocumentSize*2)

	var body uploadDocumentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds the %d MiB upload limit", workflow.MaxDocumentSize>>20))
			return
		}
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.FileName == "" || body.ContentBase64 == "" {
		respondError(w, http.StatusBadRequest, "fileName and contentBase64 are required")
		return
	}

	content, err := base64.StdEncoding.DecodeString(body.ContentBase64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "contentBase64 is not valid base64")
		return
	}
	if int64(len(content)) > workflow.MaxDocumentSize {
		respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d MiB upload limit", workflow.MaxDocumentSize>>20))
		return
	}

	docType := body.DocType
	if docType == "" {
		docType = "COA"
	}

	doc := &models.CoaDocument{
		DocType:     docType,
		FileName:    body.FileName,
		ContentType: body.ContentType,
		Note:        body.Note,
	}

	if r.dropbox != nil && r.dropbox.Enabled() {
		path := fmt.Sprintf("%s/coa/%d/%s_%s", r.dropbox.RootFolder, id, uuid.New().String()[:8], body.FileName)
		if err := r.dropbox.Upload(path, content); err != nil {
			log.Printf("❌ Dropbox upload failed: %v", err)
			respondError(w, http.StatusBadGateway, "File storage upload failed")
			return
		}
		doc.DropboxPath = &path
	}

	created, err := r.tasks.AddDocument(id, doc, content)
	if err != nil {
		// The remote copy must not outlive the failed DB write
		if doc.DropboxPath != nil {
			if derr := r.dropbox.Delete(*doc.DropboxPath); derr != nil {
				log.Printf("⚠️ Dropbox cleanup failed for %s: %v", *doc.DropboxPath, derr)
			}
		}
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log.Printf("📄 Document %d attached to task %d (%s, %d bytes)", created.ID, id, created.FileName, created.FileSize)
	respondData(w, http.StatusCreated, created)
}

// deleteTaskDocument removes an attachment and re-syncs the count
func (r *Router) deleteTaskDocument(w http.ResponseWriter, req *http.Request) {
	docID, ok := pathID(w, req, "docId")
	if !ok {
		return
	}

	doc, err := r.tasks.DeleteDocument(docID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Document not found")
		return
	}

	// Best-effort remote cleanup; the DB row is already gone
	if doc.DropboxPath != nil && r.dropbox != nil && r.dropbox.Enabled() {
		if err := r.dropbox.Delete(*doc.DropboxPath); err != nil {
			log.Printf("⚠️ Dropbox cleanup failed for %s: %v", *doc.DropboxPath, err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pickingSheet streams the printable PDF for one task
func (r *Router) pickingSheet(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	task, err := r.tasks.GetTask(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	pdf, err := report.PickingSheetPDF(task)
	if err != nil {
		log.Printf("❌ Picking sheet render failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to render picking sheet")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, task.OrderNo))
	w.Write(pdf)
}

// listWarehouses returns the configured warehouses with their aliases
// so clients can build tabs and do their own fuzzy matching.
func (r *Router) listWarehouses(w http.ResponseWriter, req *http.Request) {
	var warehouses []models.Warehouse
	if err := r.db.Where("is_active = ?", true).Order("code").Find(&warehouses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch warehouses")
		return
	}
	respondData(w, http.StatusOK, warehouses)
}

// dropboxLinkRequest asks for a short-lived download link
type dropboxLinkRequest struct {
	Path string `json:"path"`
}

// dropboxLink mints a temporary download link for a stored document
func (r *Router) dropboxLink(w http.ResponseWriter, req *http.Request) {
	var body dropboxLinkRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}

	if r.dropbox == nil || !r.dropbox.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	link, err := r.dropbox.TemporaryLink(body.Path)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondData(w, http.StatusOK, map[string]string{"link": link})
}

// pathID parses a numeric path variable, responding 400 on garbage
func pathID(w http.ResponseWriter, req *http.Request, name string) (uint, bool) {
	raw := mux.Vars(req)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id in path")
		return 0, false
	}
	return uint(id), true
}
