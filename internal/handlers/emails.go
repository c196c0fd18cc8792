package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/mkglobal/bizportal/internal/models"
	"gorm.io/datatypes"
)

// listEmails returns emails for the triage dashboard, filterable by
// status and category.
func (r *Router) listEmails(w http.ResponseWriter, req *http.Request) {
	query := r.db.Preload("Attachments").Order("received_at DESC, created_at DESC")

	if status := req.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := req.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var emails []models.Email
	if err := query.Limit(200).Find(&emails).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch emails")
		return
	}
	respondData(w, http.StatusOK, emails)
}

// createEmail ingests one inbound email (called by the mail fetcher)
func (r *Router) createEmail(w http.ResponseWriter, req *http.Request) {
	var email models.Email
	if err := json.NewDecoder(req.Body).Decode(&email); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if email.Subject == "" || email.Sender == "" {
		respondError(w, http.StatusBadRequest, "subject and sender are required")
		return
	}

	if email.ReceivedAt == nil {
		now := time.Now()
		email.ReceivedAt = &now
	}

	if err := r.db.Create(&email).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to store email (duplicate externalId?)")
		return
	}

	log.Printf("📬 Email %d stored: %s", email.ID, email.Subject)
	r.broadcast("email.created", map[string]interface{}{
		"emailId": email.ID,
		"subject": email.Subject,
	})
	respondData(w, http.StatusCreated, email)
}

// getEmail returns one email with attachments
func (r *Router) getEmail(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var email models.Email
	if err := r.db.Preload("Attachments").First(&email, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Email not found")
		return
	}
	respondData(w, http.StatusOK, email)
}

// updateEmailRequest carries triage edits from the dashboard
type updateEmailRequest struct {
	Status        *models.EmailStatus `json:"status,omitempty"`
	DraftSubject  *string             `json:"draftSubject,omitempty"`
	DraftResponse *string             `json:"draftResponse,omitempty"`
	Category      *string             `json:"category,omitempty"`
	Priority      *string             `json:"priority,omitempty"`
}

// updateEmail applies triage edits; only provided fields change
func (r *Router) updateEmail(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var body updateEmailRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var email models.Email
	if err := r.db.First(&email, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Email not found")
		return
	}

	updates := map[string]interface{}{}
	if body.Status != nil {
		updates["status"] = *body.Status
		if *body.Status == models.EmailSent {
			updates["sent_at"] = time.Now()
		}
	}
	if body.DraftSubject != nil {
		updates["draft_subject"] = *body.DraftSubject
	}
	if body.DraftResponse != nil {
		updates["draft_response"] = *body.DraftResponse
	}
	if body.Category != nil {
		updates["category"] = *body.Category
	}
	if body.Priority != nil {
		updates["priority"] = *body.Priority
	}

	if len(updates) == 0 {
		respondData(w, http.StatusOK, email)
		return
	}

	if err := r.db.Model(&email).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update email")
		return
	}
	respondData(w, http.StatusOK, email)
}

// deleteEmail removes an email and its attachments
func (r *Router) deleteEmail(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var email models.Email
	if err := r.db.First(&email, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Email not found")
		return
	}
	if err := r.db.Select("Attachments").Delete(&email).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete email")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// classifyEmail runs the AI triage over one email and stores the result
func (r *Router) classifyEmail(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	if r.gemini == nil {
		respondError(w, http.StatusServiceUnavailable, "AI triage is not configured")
		return
	}

	var email models.Email
	if err := r.db.First(&email, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Email not found")
		return
	}

	result, err := r.gemini.TriageEmail(req.Context(), email.Subject, email.Sender, email.Body)
	if err != nil {
		log.Printf("❌ Triage failed for email %d: %v", id, err)
		respondError(w, http.StatusBadGateway, "AI classification failed")
		return
	}

	payload, _ := json.Marshal(result)
	updates := map[string]interface{}{
		"category":      result.Category,
		"priority":      result.Priority,
		"ai_summary":    result.Summary,
		"ai_draft":      result.Draft,
		"ai_confidence": result.Confidence,
		"ai_payload":    datatypes.JSON(payload),
	}
	if email.Status == models.EmailUnread {
		updates["status"] = models.EmailRead
	}

	if err := r.db.Model(&email).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store classification")
		return
	}

	respondData(w, http.StatusOK, result)
}
