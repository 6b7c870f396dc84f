package models

import (
	"strings"
	"time"
)

// Interest types supported by plans.
const (
	InterestFlat     = "flat"
	InterestReducing = "reducing"
)

// Payment types supported by plans.
const (
	PaymentInterest              = "interest"
	PaymentInterestWithPrincipal = "interestWithPrincipal"
)

// Payment frequencies for the selected payment type's sub-config.
const (
	FrequencyMonthly    = "monthly"
	FrequencyQuarterly  = "quarterly"
	FrequencyHalfYearly = "half_yearly"
	FrequencyYearly     = "yearly"
	FrequencyOthers     = "others"
)

type Plan struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	InterestRate float64 `gorm:"type:decimal(8,4);not null" json:"interest_rate"` // percent per month
	InterestType string  `gorm:"type:enum('flat','reducing');default:'flat'" json:"interest_type"`
	TenureMonths int     `gorm:"not null" json:"tenure_months"`
	PaymentType  string  `gorm:"type:enum('interest','interestWithPrincipal');default:'interest'" json:"payment_type"`

	MinInvestment float64 `gorm:"type:decimal(15,2);not null" json:"min_investment"`
	MaxInvestment float64 `gorm:"type:decimal(15,2);not null" json:"max_investment"`

	// Sub-config for the selected payment type. Frequency applies to both
	// types; the repayment option is used by interest-only plans and the
	// repayment percentage by interest-with-principal plans.
	PaymentFrequency             string  `gorm:"type:varchar(16)" json:"payment_frequency"`
	PrincipalRepaymentOption     string  `gorm:"type:varchar(16)" json:"principal_repayment_option,omitempty"` // fixed | flexible
	PrincipalRepaymentPercentage float64 `gorm:"type:decimal(8,4);default:0" json:"principal_repayment_percentage,omitempty"`

	Status    string    `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// IsComplete reports whether the plan has everything needed for activation:
// basic fields plus the required sub-fields of its selected payment type.
// Advisory only; the server remains authoritative on writes.
func (p *Plan) IsComplete() bool {
	if strings.TrimSpace(p.Name) == "" {
		return false
	}
	if p.InterestRate <= 0 || p.TenureMonths < 1 {
		return false
	}
	if p.MinInvestment <= 0 || p.MaxInvestment < p.MinInvestment {
		return false
	}
	if p.PaymentFrequency == "" {
		return false
	}
	switch p.PaymentType {
	case PaymentInterest:
		return p.PrincipalRepaymentOption == "fixed" || p.PrincipalRepaymentOption == "flexible"
	case PaymentInterestWithPrincipal:
		return p.PrincipalRepaymentPercentage > 0
	}
	return false
}
