package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Warehouse represents a physical warehouse handled by the portal.
// ERP entries carry free-text warehouse codes, so each warehouse keeps
// a comma-separated alias list used for fuzzy tab matching.
type Warehouse struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"not null;unique" json:"code"` // short slug, e.g. "mk"
	Name     string `gorm:"not null" json:"name"`
	Aliases  string `gorm:"type:text" json:"aliases"` // comma-separated, e.g. "WH-MK,MK창고"
	Location string `json:"location"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}

// AliasList splits the stored alias string into individual aliases
func (w *Warehouse) AliasList() []string {
	if w.Aliases == "" {
		return nil
	}
	parts := strings.Split(w.Aliases, ",")
	aliases := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			aliases = append(aliases, trimmed)
		}
	}
	return aliases
}
