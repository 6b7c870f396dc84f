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

// remarkView is a remark with its author's display name resolved.
type remarkView struct {
	models.Remark
	AuthorName string       `json:"author_name"`
	Replies    []remarkView `json:"replies,omitempty"`
}

// GET /investments/{id}/remarks
//
// Returns top-level remarks with their replies nested one level deep.
func ListRemarksHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	db := database.DB
	var remarks []models.Remark
	if err := db.Where("investment_id = ?", id).Order("created_at ASC, id ASC").Find(&remarks).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch remarks")
		return
	}

	// One batched author lookup instead of a query per remark.
	adminIDs := make([]int64, 0, len(remarks))
	seen := make(map[int64]bool)
	for _, rm := range remarks {
		if !seen[rm.AdminID] {
			seen[rm.AdminID] = true
			adminIDs = append(adminIDs, rm.AdminID)
		}
	}
	authorNames := make(map[int64]string, len(adminIDs))
	if len(adminIDs) > 0 {
		var admins []models.Admin
		if err := db.Where("id IN ?", adminIDs).Find(&admins).Error; err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch remarks")
			return
		}
		for _, a := range admins {
			authorNames[a.ID] = a.Name
		}
	}

	toView := func(rm models.Remark) remarkView {
		return remarkView{Remark: rm, AuthorName: authorNames[rm.AdminID]}
	}

	threads := make([]remarkView, 0)
	replies := make(map[uint][]remarkView)
	for _, rm := range remarks {
		if rm.ParentID == nil {
			threads = append(threads, toView(rm))
		} else {
			replies[*rm.ParentID] = append(replies[*rm.ParentID], toView(rm))
		}
	}
	for i := range threads {
		threads[i].Replies = replies[threads[i].ID]
	}

	utils.WriteData(w, http.StatusOK, threads)
}

// POST /investments/{id}/remarks
func AddRemarkHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionAddRemarks) {
		return
	}

	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	var req struct {
		Body     string `json:"body"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		utils.WriteError(w, http.StatusBadRequest, "Remark body is required")
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

	if req.ParentID != nil {
		var parent models.Remark
		if err := db.Where("id = ? AND investment_id = ?", *req.ParentID, id).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteError(w, http.StatusNotFound, "Parent remark not found")
				return
			}
			utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		// Replies attach to the thread root; one level of nesting only.
		if parent.ParentID != nil {
			req.ParentID = parent.ParentID
		}
	}

	adminID, _ := utils.GetAdminID(r)
	remark := models.Remark{
		InvestmentID: id,
		AdminID:      adminID,
		ParentID:     req.ParentID,
		Body:         body,
	}
	if err := db.Create(&remark).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to add remark")
		return
	}

	utils.WriteData(w, http.StatusCreated, remark)
}
