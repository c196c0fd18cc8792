package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkglobal/bizportal/internal/models"
)

// listCompanies returns the vendor/company directory, searchable by name
func (r *Router) listCompanies(w http.ResponseWriter, req *http.Request) {
	query := r.db.Order("name")

	if keyword := req.URL.Query().Get("q"); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR company_cd LIKE ? OR manager LIKE ?", like, like, like)
	}
	if companyType := req.URL.Query().Get("type"); companyType != "" {
		query = query.Where("company_type = ?", companyType)
	}

	var companies []models.Company
	if err := query.Find(&companies).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch companies")
		return
	}
	respondData(w, http.StatusOK, companies)
}

// getCompany returns one directory entry
func (r *Router) getCompany(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}
	respondData(w, http.StatusOK, company)
}

// createCompany adds a directory entry
func (r *Router) createCompany(w http.ResponseWriter, req *http.Request) {
	var company models.Company
	if err := json.NewDecoder(req.Body).Decode(&company); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if company.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := r.db.Create(&company).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create company (code might exist)")
		return
	}
	respondData(w, http.StatusCreated, company)
}

// updateCompany edits a directory entry
func (r *Router) updateCompany(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&updates); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	delete(updates, "id")

	if err := r.db.Model(&company).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update company")
		return
	}
	respondData(w, http.StatusOK, company)
}

// deleteCompany removes a directory entry (soft delete)
func (r *Router) deleteCompany(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	if err := r.db.Delete(&models.Company{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete company")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
