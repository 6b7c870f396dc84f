package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/satya-aforv/finance-tracker-sub001/authz"
	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/finance"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordPaymentRequest struct {
	PaidAmount float64 `json:"paid_amount"`
	PaidDate   string  `json:"paid_date"` // YYYY-MM-DD, defaults to today
	Notes      string  `json:"notes"`
}

// GET /investments/{id}/schedule
func GetScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID")
		return
	}

	db := database.DB
	var investment models.Investment
	err := db.Preload("Plan").
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

	statuses := make([]string, 0, len(investment.Schedule))
	for _, e := range investment.Schedule {
		statuses = append(statuses, e.Status)
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"investment": investment,
		"schedule":   investment.Schedule,
		"progress":   finance.Progress(statuses, investment.TotalPaidAmount, investment.TotalExpectedReturns),
	})
}

// PUT /investments/{id}/schedule/{month}/payment
func RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAction(w, r, authz.ActionRecordPayments) {
		return
	}

	id := pathID(r, "id")
	month := pathID(r, "month")
	if id == 0 || month == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid investment ID or month")
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PaidAmount <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Paid amount must be greater than 0")
		return
	}

	paidAt := time.Now()
	if req.PaidDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaidDate)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Paid date must be YYYY-MM-DD")
			return
		}
		paidAt = parsed
	}

	adminID, _ := utils.GetAdminID(r)

	var entry models.PaymentEntry
	var investment models.Investment

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&investment, id).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("investment_id = ? AND month = ?", id, month).
			First(&entry).Error; err != nil {
			return err
		}

		if err := applyPayment(&entry, req.PaidAmount, paidAt); err != nil {
			return err
		}
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		investment.TotalPaidAmount = utils.RoundFloat(investment.TotalPaidAmount+req.PaidAmount, 2)
		investment.RemainingAmount = utils.RoundFloat(investment.TotalExpectedReturns-investment.TotalPaidAmount, 2)
		if err := tx.Save(&investment).Error; err != nil {
			return err
		}

		amount := req.PaidAmount
		description := fmt.Sprintf("Payment received for month %d", month)
		if req.Notes != "" {
			description += ": " + req.Notes
		}
		timeline := models.TimelineEntry{
			InvestmentID: investment.ID,
			Type:         models.TimelinePaymentReceived,
			Description:  description,
			Amount:       &amount,
			CreatedBy:    adminID,
		}
		return tx.Create(&timeline).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Schedule entry not found")
			return
		}
		if errors.Is(err, errAlreadyPaid) {
			utils.WriteError(w, http.StatusConflict, "Entry is already fully paid")
			return
		}
		if errors.Is(err, errOverpayment) {
			utils.WriteError(w, http.StatusBadRequest, "Paid amount exceeds the entry's outstanding balance")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"entry":      entry,
		"investment": investment,
	})
}

var (
	errAlreadyPaid = errors.New("entry already paid")
	errOverpayment = errors.New("payment exceeds outstanding balance")
)

// applyPayment records amount against entry, keeping
// 0 <= paid_amount <= total_amount. A payment covering the outstanding
// balance exactly marks the entry paid; anything less marks it partial.
func applyPayment(entry *models.PaymentEntry, amount float64, paidAt time.Time) error {
	if entry.Status == models.EntryPaid {
		return errAlreadyPaid
	}
	outstanding := utils.RoundFloat(entry.TotalAmount-entry.PaidAmount, 2)
	if amount > outstanding {
		return errOverpayment
	}

	entry.PaidAmount = utils.RoundFloat(entry.PaidAmount+amount, 2)
	entry.PaidAt = &paidAt
	if entry.PaidAmount >= entry.TotalAmount {
		entry.Status = models.EntryPaid
	} else {
		entry.Status = models.EntryPartialPaid
	}
	return nil
}

// POST /cron/overdue
//
// Marks past-due pending entries as overdue. Guarded by X-CRON-KEY; hit by
// the scheduler, not by admins.
func MarkOverdueCronHandler(w http.ResponseWriter, r *http.Request) {
	cronKey := os.Getenv("CRON_KEY")
	if cronKey == "" || r.Header.Get("X-CRON-KEY") != cronKey {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	now := time.Now()
	result := database.DB.Model(&models.PaymentEntry{}).
		Where("status = ? AND due_date < ?", models.EntryPending, now).
		Update("status", models.EntryOverdue)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to mark overdue entries")
		return
	}

	log.Printf("[CRON] marked %d payment entries overdue", result.RowsAffected)
	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"updated": result.RowsAffected,
	})
}
