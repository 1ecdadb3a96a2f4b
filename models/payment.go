package models

import "time"

const (
	PaymentTypeCard   = "card"
	PaymentTypePaypal = "paypal"
	PaymentTypeBank   = "bank"
)

// PaymentMethod 用户保存的支付方式，只存脱敏信息
type PaymentMethod struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_payment_methods_user;column:user_id" json:"user_id"`
	Type      string    `gorm:"size:20;not null;column:type" json:"type"`
	Provider  string    `gorm:"size:50;column:provider" json:"provider"`
	Last4     string    `gorm:"size:4;column:last4" json:"last4"`
	Expires   string    `gorm:"size:5;column:expires" json:"expires,omitempty"`
	IsDefault bool      `gorm:"not null;column:is_default" json:"is_default"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
