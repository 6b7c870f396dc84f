package models

import "time"

// Document is file metadata for an upload attached to an investment. The
// binary lives in object storage under ObjectKey; rows are append-only except
// for explicit deletes.
type Document struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvestmentID uint      `gorm:"not null;index" json:"investment_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	ObjectKey    string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"-"`
	Category     string    `gorm:"type:varchar(64)" json:"category"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	Size         int64     `gorm:"not null" json:"size"`
	ContentType  string    `gorm:"type:varchar(128)" json:"content_type"`
	UploadedBy   int64     `gorm:"index" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
