package models

import (
	"time"
)

// PriceQuote is one observed commodity or currency rate. History rows
// are append-only; the latest row per symbol is the "current" price.
type PriceQuote struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Symbol   string  `gorm:"not null;index" json:"symbol"` // e.g. USD_KRW, CNY_KRW
	Rate     float64 `gorm:"not null" json:"rate"`
	RateDate string  `gorm:"not null;index" json:"rateDate"` // YYYY-MM-DD
	Source   string  `gorm:"default:'exchangerate-api'" json:"source"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for PriceQuote model
func (PriceQuote) TableName() string {
	return "price_quotes"
}
