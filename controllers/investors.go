package controllers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/satya-aforv/finance-tracker-sub001/authz"
	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"

	"gorm.io/gorm"
)

type InvestorRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

func (req *InvestorRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "Investor name is required"
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return "Email is not valid"
	}
	if req.Status != "" && req.Status != "Active" && req.Status != "Inactive" {
		return "Status must be Active or Inactive"
	}
	return ""
}

// GET /investors
func ListInvestorsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	search := trimQuery(r, "search")
	status := trimQuery(r, "status")

	db := database.DB
	query := db.Model(&models.Investor{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch investors")
		return
	}

	var investors []models.Investor
	offset := (page - 1) * limit
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&investors).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch investors")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Data: investors,
		Pagination: &utils.Pagination{
			Pages: int(math.Ceil(float64(totalRows) / float64(limit))),
			Page:  page,
			Limit: limit,
			Total: totalRows,
		},
	})
}

// GET /investors/{id}
func GetInvestorHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investor ID")
		return
	}

	db := database.DB
	var investor models.Investor
	if err := db.First(&investor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Investor not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	var investments []models.Investment
	if err := db.Preload("Plan").Where("investor_id = ?", id).Order("created_at DESC").Find(&investments).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"investor":    investor,
		"investments": investments,
	})
}

// POST /investors
func CreateInvestorHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManageInvestors) {
		return
	}

	var req InvestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	investor := models.Investor{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: req.Address,
		Status:  "Active",
	}
	if req.Status != "" {
		investor.Status = req.Status
	}

	if err := database.DB.Create(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.WriteError(w, http.StatusConflict, "An investor with this email already exists")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create investor")
		return
	}

	utils.WriteData(w, http.StatusCreated, investor)
}

// PUT /investors/{id}
func UpdateInvestorHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManageInvestors) {
		return
	}

	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investor ID")
		return
	}

	var req InvestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	db := database.DB
	var investor models.Investor
	if err := db.First(&investor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Investor not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	investor.Name = strings.TrimSpace(req.Name)
	investor.Email = strings.TrimSpace(req.Email)
	investor.Phone = strings.TrimSpace(req.Phone)
	investor.Address = req.Address
	if req.Status != "" {
		investor.Status = req.Status
	}

	if err := db.Save(&investor).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update investor")
		return
	}

	utils.WriteData(w, http.StatusOK, investor)
}
