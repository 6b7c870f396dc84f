package controllers

import (
	"net/http"
	"time"

	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"
)

type DashboardStats struct {
	TotalInvestors     int64   `json:"total_investors"`
	ActiveInvestments  int64   `json:"active_investments"`
	TotalInvested      float64 `json:"total_invested"`
	TotalExpected      float64 `json:"total_expected"`
	TotalCollected     float64 `json:"total_collected"`
	OverdueEntries     int64   `json:"overdue_entries"`
	DueThisMonth       int64   `json:"due_this_month"`
	DueThisMonthAmount float64 `json:"due_this_month_amount"`
}

// GET /dashboard/stats
func DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	var stats DashboardStats

	if err := db.Model(&models.Investor{}).Where("status = ?", "Active").Count(&stats.TotalInvestors).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	if err := db.Model(&models.Investment{}).Where("status = ?", models.InvestmentActive).Count(&stats.ActiveInvestments).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	type sums struct {
		Invested  float64
		Expected  float64
		Collected float64
	}
	var s sums
	err := db.Model(&models.Investment{}).
		Select("COALESCE(SUM(principal_amount),0) AS invested, COALESCE(SUM(total_expected_returns),0) AS expected, COALESCE(SUM(total_paid_amount),0) AS collected").
		Where("status IN ?", []string{models.InvestmentActive, models.InvestmentCompleted}).
		Scan(&s).Error
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	stats.TotalInvested = s.Invested
	stats.TotalExpected = s.Expected
	stats.TotalCollected = s.Collected

	now := time.Now()
	if err := db.Model(&models.PaymentEntry{}).Where("status = ?", models.EntryOverdue).Count(&stats.OverdueEntries).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	type due struct {
		Count  int64
		Amount float64
	}
	var d due
	err = db.Model(&models.PaymentEntry{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount - paid_amount),0) AS amount").
		Where("status IN ? AND due_date >= ? AND due_date < ?",
			[]string{models.EntryPending, models.EntryPartialPaid}, monthStart, monthEnd).
		Scan(&d).Error
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	stats.DueThisMonth = d.Count
	stats.DueThisMonthAmount = utils.RoundFloat(d.Amount, 2)

	utils.WriteData(w, http.StatusOK, stats)
}
