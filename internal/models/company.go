package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is one vendor/counterparty in the directory, imported from
// the ERP customer master and editable through the portal.
type Company struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyCd   string `gorm:"uniqueIndex" json:"companyCd"` // ERP customer code
	Name        string `gorm:"not null;index" json:"name"`
	CompanyType string `gorm:"default:'customer'" json:"companyType"` // customer | supplier | both
	BizNumber   string `json:"bizNumber"`                             // tax registration number
	CeoName     string `json:"ceoName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Manager     string `json:"manager"` // our staff in charge
	Note        string `gorm:"type:text" json:"note"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Company model
func (Company) TableName() string {
	return "companies"
}
