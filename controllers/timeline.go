package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/satya-aforv/finance-tracker-sub001/authz"
	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"

	"gorm.io/gorm"
)

// GET /investments/{id}/timeline
func ListTimelineHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	db := database.DB
	var entries []models.TimelineEntry
	query := db.Where("investment_id = ?", id)
	if t := trimQuery(r, "type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch timeline")
		return
	}

	utils.WriteData(w, http.StatusOK, entries)
}

// POST /investments/{id}/timeline
//
// Manual note on the timeline. System events (creation, payments, uploads,
// status changes) are written by their own handlers.
func AddTimelineNoteHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManageInvestments) {
		return
	}

	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	var req struct {
		Description string   `json:"description"`
		Amount      *float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		utils.WriteError(w, http.StatusBadRequest, "Description is required")
		return
	}

	db := database.DB
	var investment models.Investment
	if err := db.First(&investment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Investment not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	adminID, _ := utils.GetAdminID(r)
	entry := models.TimelineEntry{
		InvestmentID: id,
		Type:         models.TimelineNote,
		Description:  strings.TrimSpace(req.Description),
		Amount:       req.Amount,
		CreatedBy:    adminID,
	}
	if err := db.Create(&entry).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to add timeline entry")
		return
	}

	utils.WriteData(w, http.StatusCreated, entry)
}
