package models

import "time"

// Remark is a comment on an investment. Replies reference their parent via
// ParentID; the author is always the authenticated admin, never a literal.
type Remark struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvestmentID uint      `gorm:"not null;index" json:"investment_id"`
	AdminID      int64     `gorm:"not null;index" json:"admin_id"`
	ParentID     *uint     `gorm:"index" json:"parent_id,omitempty"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Replies []Remark `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Remark) TableName() string {
	return "remarks"
}
