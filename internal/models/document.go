package models

import (
	"time"

	"gorm.io/gorm"
)

// CoaDocument is a quality-certification or shipping document attached
// to a fulfillment task. Created by upload, destroyed by delete, never
// mutated in place.
type CoaDocument struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	TaskID      uint    `gorm:"not null;index" json:"taskId"`
	DocType     string  `gorm:"default:'COA';index" json:"docType"` // COA, PACKING_LIST, ETC
	FileName    string  `gorm:"not null" json:"fileName"`
	FileSize    int64   `json:"fileSize"`
	ContentType string  `json:"contentType"`
	DropboxPath *string `json:"dropboxPath,omitempty"`
	Note        *string `json:"note,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for CoaDocument model
func (CoaDocument) TableName() string {
	return "coa_documents"
}
