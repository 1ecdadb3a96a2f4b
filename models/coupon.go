package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Code      string          `gorm:"size:64;not null;uniqueIndex:idx_coupons_code;column:code" json:"code"`
	Value     decimal.Decimal `gorm:"type:decimal(12,2);not null;column:value" json:"value"`
	Type      string          `gorm:"size:20;not null;column:type" json:"type"`
	ExpiresAt time.Time       `gorm:"not null;column:expires_at" json:"expires_at"`
	IsUsed    bool            `gorm:"not null;column:is_used" json:"is_used"`
	UserID    *uint64         `gorm:"index:idx_coupons_user;column:user_id" json:"user_id,omitempty"` // 积分兑换时记录领取人
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}
