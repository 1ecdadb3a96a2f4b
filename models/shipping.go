package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShippingOption struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name          string          `gorm:"size:100;not null;uniqueIndex:idx_shipping_name;column:name" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;column:price" json:"price"`
	EstimatedDays int             `gorm:"not null;column:estimated_days" json:"estimated_days"`
	IsActive      bool            `gorm:"not null;column:is_active" json:"is_active"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ShippingOption) TableName() string {
	return "shipping_options"
}
