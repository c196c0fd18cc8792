package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mkglobal/bizportal/internal/middleware"
	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/report"
	"gorm.io/datatypes"
)

const reportDir = "./report_files"

// listReports returns generated market reports, newest first
func (r *Router) listReports(w http.ResponseWriter, req *http.Request) {
	var reports []models.MarketReport
	if err := r.db.Order("report_date DESC, created_at DESC").Limit(100).Find(&reports).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}
	respondData(w, http.StatusOK, reports)
}

// generateReportRequest selects the report flavor
type generateReportRequest struct {
	ReportType string `json:"reportType"` // daily | weekly | monthly
	Title      string `json:"title"`
}

// generateReport builds a market report: rate snapshot from the price
// service, commentary from the AI client, rendered to PDF on disk.
func (r *Router) generateReport(w http.ResponseWriter, req *http.Request) {
	if r.rates == nil {
		respondError(w, http.StatusServiceUnavailable, "Price service is not configured")
		return
	}

	var body generateReportRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.ReportType == "" {
		body.ReportType = "daily"
	}

	today := time.Now().Format("2006-01-02")
	title := body.Title
	if title == "" {
		title = fmt.Sprintf("Market Report %s", today)
	}

	quotes, err := r.rates.Current(defaultSymbols)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "No rates available for a report yet")
		return
	}

	commentary := "AI commentary unavailable."
	if r.gemini != nil {
		var lines string
		for symbol, q := range quotes {
			lines += fmt.Sprintf("%s: %.2f (as of %s)\n", symbol, q.Rate, q.RateDate)
		}
		if text, err := r.gemini.MarketCommentary(req.Context(), lines); err == nil {
			commentary = text
		} else {
			log.Printf("❌ Market commentary failed: %v", err)
		}
	}

	pdf, err := report.MarketReportPDF(title, today, quotes, commentary)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render report PDF")
		return
	}

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to prepare report storage")
		return
	}
	fileName := fmt.Sprintf("market_%s_%s.pdf", today, uuid.New().String()[:8])
	filePath := filepath.Join(reportDir, fileName)
	if err := os.WriteFile(filePath, pdf, 0o644); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store report PDF")
		return
	}

	stats, _ := json.Marshal(quotes)
	record := models.MarketReport{
		ReportDate: today,
		ReportType: body.ReportType,
		Title:      title,
		Summary:    commentary,
		Stats:      datatypes.JSON(stats),
		FileName:   fileName,
		FilePath:   &filePath,
	}
	if claims, ok := req.Context().Value(middleware.UserContextKey).(jwt.MapClaims); ok {
		if id, ok := claims["id"].(string); ok {
			record.GeneratedBy = &id
		}
	}

	if err := r.db.Create(&record).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store report record")
		return
	}

	log.Printf("📊 Market report %d generated (%s)", record.ID, fileName)
	respondData(w, http.StatusCreated, record)
}

// downloadReport streams a stored report PDF
func (r *Router) downloadReport(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var record models.MarketReport
	if err := r.db.First(&record, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Report not found")
		return
	}
	if record.FilePath == nil {
		respondError(w, http.StatusNotFound, "Report file is missing")
		return
	}

	pdf, err := os.ReadFile(*record.FilePath)
	if err != nil {
		respondError(w, http.StatusNotFound, "Report file is missing")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, record.FileName))
	w.Write(pdf)
}
