package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mkglobal/bizportal/internal/middleware"
	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// login handles user login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var user models.UserAuth
	if err := r.db.Where("email = ?", loginReq.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		respondError(w, http.StatusForbidden, "Account is disabled")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	r.db.Save(&user)

	accessToken, refreshToken, err := utils.GenerateTokens(&user, r.cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// register handles user registration; new users start as staff
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if regReq.Email == "" || regReq.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hashedPassword, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.UserAuth{
		Email:      regReq.Email,
		Password:   hashedPassword,
		Name:       regReq.Name,
		Department: regReq.Department,
		Role:       "staff",
	}

	if err := r.db.Create(&user).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create user (email might exist)")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&user, r.cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "User created but failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// me returns the authenticated user's record
func (r *Router) me(w http.ResponseWriter, req *http.Request) {
	claims, ok := req.Context().Value(middleware.UserContextKey).(jwt.MapClaims)
	if !ok {
		respondError(w, http.StatusUnauthorized, "No user in context")
		return
	}

	id, _ := claims["id"].(string)
	var user models.UserAuth
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondData(w, http.StatusOK, user)
}

// listUsers returns all users (admin only)
func (r *Router) listUsers(w http.ResponseWriter, req *http.Request) {
	claims, _ := req.Context().Value(middleware.UserContextKey).(jwt.MapClaims)
	if role, _ := claims["role"].(string); role != "admin" {
		respondError(w, http.StatusForbidden, "Admin role required")
		return
	}

	var users []models.UserAuth
	if err := r.db.Order("created_at").Find(&users).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	respondData(w, http.StatusOK, users)
}
