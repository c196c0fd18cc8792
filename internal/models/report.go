package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MarketReport is a generated market summary: AI-written prose plus a
// rendered PDF stored on disk or Dropbox.
type MarketReport struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ReportDate string         `gorm:"not null;index" json:"reportDate"` // YYYY-MM-DD
	ReportType string         `gorm:"default:'daily'" json:"reportType"` // daily | weekly | monthly
	Title      string         `json:"title"`
	Summary    string         `gorm:"type:text" json:"summary"`
	Stats      datatypes.JSON `json:"stats,omitempty"` // rate snapshot, counts
	FileName   string         `json:"fileName"`
	FilePath   *string        `json:"filePath,omitempty"`

	GeneratedBy *string `gorm:"type:uuid" json:"generatedBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for MarketReport model
func (MarketReport) TableName() string {
	return "market_reports"
}
