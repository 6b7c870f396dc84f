package controllers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/satya-aforv/finance-tracker-sub001/authz"
	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/finance"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"

	"gorm.io/gorm"
)

type CreateInvestmentRequest struct {
	InvestorID      uint    `json:"investor_id"`
	PlanID          uint    `json:"plan_id"`
	PrincipalAmount float64 `json:"principal_amount"`
	InvestmentDate  string  `json:"investment_date"` // YYYY-MM-DD, defaults to today
	Notes           string  `json:"notes"`
}

// GET /investments
func ListInvestmentsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	search := trimQuery(r, "search")
	status := trimQuery(r, "status")

	db := database.DB
	query := db.Model(&models.Investment{}).
		Joins("LEFT JOIN investors ON investors.id = investments.investor_id")

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("investments.reference_code LIKE ? OR investors.name LIKE ?", like, like)
	}
	if status != "" {
		query = query.Where("investments.status = ?", status)
	}
	if v := trimQuery(r, "investor_id"); v != "" {
		query = query.Where("investments.investor_id = ?", v)
	}
	if v := trimQuery(r, "plan_id"); v != "" {
		query = query.Where("investments.plan_id = ?", v)
	}
	if v := trimQuery(r, "date_from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			query = query.Where("investments.investment_date >= ?", from)
		}
	}
	if v := trimQuery(r, "date_to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			query = query.Where("investments.investment_date < ?", to.AddDate(0, 0, 1))
		}
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch investments")
		return
	}

	var investments []models.Investment
	offset := (page - 1) * limit
	if err := query.Preload("Investor").Preload("Plan").
		Order("investments.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&investments).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch investments")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Data: investments,
		Pagination: &utils.Pagination{
			Pages: int(math.Ceil(float64(totalRows) / float64(limit))),
			Page:  page,
			Limit: limit,
			Total: totalRows,
		},
	})
}

// GET /investments/{id}
func GetInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	db := database.DB
	var investment models.Investment
	err := db.Preload("Investor").Preload("Plan").
		Preload("Schedule", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("month ASC")
		}).
		First(&investment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Investment not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.WriteData(w, http.StatusOK, investment)
}

// POST /investments
func CreateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManageInvestments) {
		return
	}

	var req CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.InvestorID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Investor is required")
		return
	}
	if req.PlanID == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Plan is required")
		return
	}
	if req.PrincipalAmount <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Principal amount must be greater than 0")
		return
	}

	investmentDate := time.Now().Truncate(24 * time.Hour)
	if req.InvestmentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.InvestmentDate)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Investment date must be YYYY-MM-DD")
			return
		}
		investmentDate = parsed
	}

	db := database.DB

	var investor models.Investor
	if err := db.First(&investor, req.InvestorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Investor not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	var plan models.Plan
	if err := db.First(&plan, req.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Plan not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if plan.Status != "Active" {
		utils.WriteError(w, http.StatusBadRequest, "Plan is not active")
		return
	}
	if !plan.IsComplete() {
		utils.WriteError(w, http.StatusBadRequest, "Plan payment structure is incomplete")
		return
	}
	if req.PrincipalAmount < plan.MinInvestment || req.PrincipalAmount > plan.MaxInvestment {
		utils.WriteError(w, http.StatusBadRequest, "Principal amount is outside the plan's investment range")
		return
	}

	entries, calc, ok := finance.GenerateSchedule(finance.ScheduleInput{
		Principal:                    req.PrincipalAmount,
		RatePercent:                  plan.InterestRate,
		InterestType:                 plan.InterestType,
		PaymentType:                  plan.PaymentType,
		Frequency:                    plan.PaymentFrequency,
		PrincipalRepaymentPercentage: plan.PrincipalRepaymentPercentage,
		TenureMonths:                 plan.TenureMonths,
		StartDate:                    investmentDate,
	})
	if !ok {
		utils.WriteError(w, http.StatusUnprocessableEntity, "Amount is not calculable for this plan")
		return
	}

	totalExpected := utils.RoundFloat(req.PrincipalAmount+calc.TotalInterest, 2)

	investment := models.Investment{
		InvestorID:           req.InvestorID,
		PlanID:               req.PlanID,
		PrincipalAmount:      req.PrincipalAmount,
		InvestmentDate:       investmentDate,
		MaturityDate:         investmentDate.AddDate(0, plan.TenureMonths, 0),
		TotalExpectedReturns: totalExpected,
		TotalPaidAmount:      0,
		RemainingAmount:      totalExpected,
		ReferenceCode:        utils.GenerateReferenceCode(req.InvestorID),
		Status:               models.InvestmentActive,
		Notes:                req.Notes,
	}

	adminID, _ := utils.GetAdminID(r)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&investment).Error; err != nil {
			return err
		}

		schedule := make([]models.PaymentEntry, 0, len(entries))
		for _, e := range entries {
			schedule = append(schedule, models.PaymentEntry{
				InvestmentID:    investment.ID,
				Month:           e.Month,
				DueDate:         e.DueDate,
				InterestAmount:  e.InterestAmount,
				PrincipalAmount: e.PrincipalAmount,
				TotalAmount:     e.TotalAmount,
				Status:          models.EntryPending,
			})
		}
		if err := tx.Create(&schedule).Error; err != nil {
			return err
		}

		amount := investment.PrincipalAmount
		timeline := models.TimelineEntry{
			InvestmentID: investment.ID,
			Type:         models.TimelineInvestmentCreated,
			Description:  "Investment created",
			Amount:       &amount,
			CreatedBy:    adminID,
		}
		return tx.Create(&timeline).Error
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create investment")
		return
	}

	investment.Investor = &investor
	investment.Plan = &plan
	utils.WriteData(w, http.StatusCreated, investment)
}

// PUT /investments/{id}
func UpdateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionManageInvestments) {
		return
	}

	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	var req struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
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

	var statusChanged bool
	if req.Status != nil {
		switch *req.Status {
		case models.InvestmentActive, models.InvestmentCompleted, models.InvestmentClosed, models.InvestmentDefaulted:
		default:
			utils.WriteError(w, http.StatusBadRequest, "Status is not valid")
			return
		}
		statusChanged = investment.Status != *req.Status
		investment.Status = *req.Status
	}
	if req.Notes != nil {
		investment.Notes = *req.Notes
	}

	adminID, _ := utils.GetAdminID(r)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&investment).Error; err != nil {
			return err
		}
		if statusChanged {
			timeline := models.TimelineEntry{
				InvestmentID: investment.ID,
				Type:         models.TimelineStatusChanged,
				Description:  "Status changed to " + investment.Status,
				CreatedBy:    adminID,
			}
			return tx.Create(&timeline).Error
		}
		return nil
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update investment")
		return
	}

	utils.WriteData(w, http.StatusOK, investment)
}

// CalculateRequest feeds POST /investments/calculate. With a plan_id the
// plan's terms are authoritative; explicit terms serve unsaved drafts.
type CalculateRequest struct {
	PlanID          uint    `json:"plan_id"`
	PrincipalAmount float64 `json:"principal_amount"`
	InterestRate    float64 `json:"interest_rate"`
	InterestType    string  `json:"interest_type"`
	TenureMonths    int     `json:"tenure_months"`
}

// POST /investments/calculate
func CalculateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rate, interestType, tenure := req.InterestRate, req.InterestType, req.TenureMonths
	if req.PlanID != 0 {
		var plan models.Plan
		if err := database.DB.First(&plan, req.PlanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteError(w, http.StatusNotFound, "Plan not found")
				return
			}
			utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		rate, interestType, tenure = plan.InterestRate, plan.InterestType, plan.TenureMonths
	}

	calc, ok := finance.CalculateReturns(req.PrincipalAmount, rate, interestType, tenure)
	if !ok {
		utils.WriteError(w, http.StatusUnprocessableEntity, "Amount is not calculable")
		return
	}

	utils.WriteData(w, http.StatusOK, finance.CalculationResult{
		PrincipalAmount: req.PrincipalAmount,
		Calculations:    calc,
	})
}
