package handlers

import (
	"encoding/json"
	"net/http"
)

// updateWorkflow edits the descriptive fields of the underlying
// workflow record. Status is not editable here; it only moves through
// the /warehouse-ops/{id}/process transition endpoint.
func (r *Router) updateWorkflow(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&updates); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := r.tasks.UpdateTask(id, updates)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   task,
	})
}

// deleteWorkflow removes a workflow record and its line items
func (r *Router) deleteWorkflow(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	if err := r.tasks.DeleteTask(id); err != nil {
		respondError(w, http.StatusNotFound, "Workflow not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
