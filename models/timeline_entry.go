package models

import "time"

// Timeline entry types.
const (
	TimelineInvestmentCreated = "investment_created"
	TimelinePaymentReceived   = "payment_received"
	TimelineStatusChanged     = "status_changed"
	TimelineDocumentUploaded  = "document_uploaded"
	TimelineNote              = "note"
)

// TimelineEntry is an append-only audit record on an investment, created by
// explicit user action, never derived.
type TimelineEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvestmentID uint      `gorm:"not null;index" json:"investment_id"`
	Type         string    `gorm:"type:varchar(32);not null" json:"type"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Amount       *float64  `gorm:"type:decimal(15,2)" json:"amount,omitempty"`
	Metadata     string    `gorm:"type:json" json:"metadata,omitempty"`
	CreatedBy    int64     `gorm:"index" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (TimelineEntry) TableName() string {
	return "timeline_entries"
}
