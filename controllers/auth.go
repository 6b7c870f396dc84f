package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /admin/login
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	admin, err := models.GetAdminByUsername(req.Username)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if !admin.ValidatePassword(req.Password) {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := utils.GenerateAccessToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	refresh, err := utils.GenerateRefreshToken(admin.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"token":         token,
		"refresh_token": refresh,
		"admin":         admin,
	})
}
