package models

import "time"

// Investment statuses. Set to active at creation; every transition is an
// explicit administrative update, nothing flips automatically.
const (
	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
	InvestmentClosed    = "closed"
	InvestmentDefaulted = "defaulted"
)

type Investment struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	InvestorID uint `gorm:"not null;index" json:"investor_id"`
	PlanID     uint `gorm:"not null;index" json:"plan_id"`

	PrincipalAmount float64   `gorm:"type:decimal(15,2);not null" json:"principal_amount"`
	InvestmentDate  time.Time `gorm:"not null" json:"investment_date"`
	MaturityDate    time.Time `gorm:"not null" json:"maturity_date"`

	TotalExpectedReturns float64 `gorm:"type:decimal(15,2);not null;default:0.00" json:"total_expected_returns"`
	TotalPaidAmount      float64 `gorm:"type:decimal(15,2);not null;default:0.00" json:"total_paid_amount"`
	RemainingAmount      float64 `gorm:"type:decimal(15,2);not null;default:0.00" json:"remaining_amount"`

	ReferenceCode string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"reference_code"`
	Status        string    `gorm:"type:enum('active','completed','closed','defaulted');default:'active'" json:"status"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Investor *Investor      `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
	Plan     *Plan          `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Schedule []PaymentEntry `gorm:"foreignKey:InvestmentID" json:"schedule,omitempty"`
}

func (Investment) TableName() string {
	return "investments"
}
