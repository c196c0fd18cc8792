package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mkglobal/bizportal/internal/services/erp"
)

// submitERPEntry accepts a purchase/sales entry form, pushes it to the
// ERP and opens the matching fulfillment task in ERP_SUBMITTED.
func (r *Router) submitERPEntry(w http.ResponseWriter, req *http.Request) {
	if r.erp == nil {
		respondError(w, http.StatusServiceUnavailable, "ERP bridge is not configured")
		return
	}

	var entry erp.Entry
	if err := json.NewDecoder(req.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := r.erp.Submit(&entry)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log.Printf("🧾 ERP entry submitted: task %d (%s) for %s", task.ID, task.OrderNo, task.CustomerName)
	r.broadcast("task.created", map[string]interface{}{
		"taskId":  task.ID,
		"orderNo": task.OrderNo,
	})

	respondData(w, http.StatusCreated, task)
}
