package controllers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/satya-aforv/finance-tracker-sub001/authz"
	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/finance"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"

	"gorm.io/gorm"
)

type PlanRequest struct {
	Name                         string  `json:"name"`
	Description                  string  `json:"description"`
	InterestRate                 float64 `json:"interest_rate"`
	InterestType                 string  `json:"interest_type"`
	TenureMonths                 int     `json:"tenure_months"`
	PaymentType                  string  `json:"payment_type"`
	MinInvestment                float64 `json:"min_investment"`
	MaxInvestment                float64 `json:"max_investment"`
	PaymentFrequency             string  `json:"payment_frequency"`
	PrincipalRepaymentOption     string  `json:"principal_repayment_option"`
	PrincipalRepaymentPercentage float64 `json:"principal_repayment_percentage"`
	Status                       string  `json:"status"`
}

func (req *PlanRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "Plan name is required"
	}
	if req.InterestRate <= 0 {
		return "Interest rate must be greater than 0"
	}
	if req.InterestType != models.InterestFlat && req.InterestType != models.InterestReducing {
		return "Interest type must be flat or reducing"
	}
	if req.TenureMonths < 1 {
		return "Tenure must be at least 1 month"
	}
	if req.PaymentType != models.PaymentInterest && req.PaymentType != models.PaymentInterestWithPrincipal {
		return "Payment type must be interest or interestWithPrincipal"
	}
	if req.MinInvestment <= 0 {
		return "Minimum investment must be greater than 0"
	}
	if req.MaxInvestment < req.MinInvestment {
		return "Maximum investment must not be below minimum investment"
	}
	switch req.PaymentFrequency {
	case models.FrequencyMonthly, models.FrequencyQuarterly, models.FrequencyHalfYearly, models.FrequencyYearly, models.FrequencyOthers:
	default:
		return "Payment frequency is not valid"
	}
	return ""
}

func (req *PlanRequest) apply(plan *models.Plan) {
	plan.Name = strings.TrimSpace(req.Name)
	plan.Description = req.Description
	plan.InterestRate = req.InterestRate
	plan.InterestType = req.InterestType
	plan.TenureMonths = req.TenureMonths
	plan.PaymentType = req.PaymentType
	plan.MinInvestment = req.MinInvestment
	plan.MaxInvestment = req.MaxInvestment
	plan.PaymentFrequency = req.PaymentFrequency
	plan.PrincipalRepaymentOption = req.PrincipalRepaymentOption
	plan.PrincipalRepaymentPercentage = req.PrincipalRepaymentPercentage
	if req.Status == "Active" || req.Status == "Inactive" {
		plan.Status = req.Status
	}
}

// planView decorates a plan with its completeness indicator.
type planView struct {
	models.Plan
	IsComplete bool `json:"is_complete"`
}

func toPlanView(p models.Plan) planView {
	return planView{Plan: p, IsComplete: p.IsComplete()}
}

// GET /plans
func ListPlansHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	search := trimQuery(r, "search")
	status := trimQuery(r, "status")

	db := database.DB
	query := db.Model(&models.Plan{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch plans")
		return
	}

	var plans []models.Plan
	offset := (page - 1) * limit
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&plans).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch plans")
		return
	}

	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		views = append(views, toPlanView(p))
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Data: views,
		Pagination: &utils.Pagination{
			Pages: int(math.Ceil(float64(totalRows) / float64(limit))),
			Page:  page,
			Limit: limit,
			Total: totalRows,
		},
	})
}

// GET /plans/active
func ListActivePlansHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	var plans []models.Plan
	if err := db.Where("status = ?", "Active").Order("id ASC").Find(&plans).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch active plans")
		return
	}
	utils.WriteData(w, http.StatusOK, plans)
}

// GET /plans/{id}
func GetPlanHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	db := database.DB
	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Plan not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.WriteData(w, http.StatusOK, toPlanView(plan))
}

// POST /plans
func CreatePlanHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManagePlans) {
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	plan := models.Plan{Status: "Active"}
	req.apply(&plan)

	// Activation requires a complete payment structure; incomplete plans can
	// only be saved inactive.
	if plan.Status == "Active" && !plan.IsComplete() {
		utils.WriteError(w, http.StatusBadRequest, "Plan payment structure is incomplete")
		return
	}

	if err := database.DB.Create(&plan).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	utils.WriteData(w, http.StatusCreated, toPlanView(plan))
}

// PUT /plans/{id}
func UpdatePlanHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManagePlans) {
		return
	}

	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	db := database.DB
	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Plan not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	// Plans referenced by investments keep their financial terms; only
	// descriptive fields and status may change (explicit versioning is a
	// backend concern out of scope here).
	var refs int64
	if err := db.Model(&models.Investment{}).Where("plan_id = ?", plan.ID).Count(&refs).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if refs > 0 {
		termsChanged := plan.InterestRate != req.InterestRate ||
			plan.InterestType != req.InterestType ||
			plan.TenureMonths != req.TenureMonths ||
			plan.PaymentType != req.PaymentType
		if termsChanged {
			utils.WriteError(w, http.StatusConflict, "Plan has investments; financial terms cannot be changed")
			return
		}
	}

	req.apply(&plan)
	if plan.Status == "Active" && !plan.IsComplete() {
		utils.WriteError(w, http.StatusBadRequest, "Plan payment structure is incomplete")
		return
	}

	if err := db.Save(&plan).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	utils.WriteData(w, http.StatusOK, toPlanView(plan))
}

// DELETE /plans/{id}
func DeletePlanHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManagePlans) {
		return
	}

	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	db := database.DB
	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Plan not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	var refs int64
	if err := db.Model(&models.Investment{}).Where("plan_id = ?", plan.ID).Count(&refs).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if refs > 0 {
		utils.WriteError(w, http.StatusConflict, "Plan has investments and cannot be deleted")
		return
	}

	if err := db.Delete(&plan).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete plan")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// POST /plans/{id}/calculate
func CalculatePlanReturnsHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	var req struct {
		PrincipalAmount float64 `json:"principal_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	db := database.DB
	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Plan not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	calc, ok := finance.CalculateReturns(req.PrincipalAmount, plan.InterestRate, plan.InterestType, plan.TenureMonths)
	if !ok {
		utils.WriteError(w, http.StatusUnprocessableEntity, "Amount is not calculable")
		return
	}

	utils.WriteData(w, http.StatusOK, finance.CalculationResult{
		PrincipalAmount: req.PrincipalAmount,
		Calculations:    calc,
	})
}
