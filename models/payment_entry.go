package models

import "time"

// Payment entry statuses. For progress purposes an entry counts as completed
// when its status is paid or partial_paid.
const (
	EntryPending     = "pending"
	EntryPartialPaid = "partial_paid"
	EntryPaid        = "paid"
	EntryOverdue     = "overdue"
)

// PaymentEntry is one scheduled installment of an investment. Month is the
// ordering key, 1..tenure, unique within the investment. The entry count is
// fixed once the schedule is generated; only paid_amount and status change.
type PaymentEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvestmentID uint      `gorm:"not null;index:idx_entry_investment_month,unique" json:"investment_id"`
	Month        int       `gorm:"not null;index:idx_entry_investment_month,unique" json:"month"`
	DueDate      time.Time `gorm:"not null" json:"due_date"`

	InterestAmount  float64 `gorm:"type:decimal(15,2);not null" json:"interest_amount"`
	PrincipalAmount float64 `gorm:"type:decimal(15,2);not null;default:0.00" json:"principal_amount"`
	TotalAmount     float64 `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaidAmount      float64 `gorm:"type:decimal(15,2);not null;default:0.00" json:"paid_amount"`

	Status    string     `gorm:"type:enum('pending','partial_paid','paid','overdue');default:'pending'" json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (PaymentEntry) TableName() string {
	return "payment_entries"
}
