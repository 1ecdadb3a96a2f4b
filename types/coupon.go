package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ValidateCouponRequest struct {
	Code        string          `json:"code" binding:"required"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

type CouponValidation struct {
	IsValid        bool            `json:"is_valid"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

type CreateCouponRequest struct {
	Code      string          `json:"code" binding:"required,max=64"`
	Value     decimal.Decimal `json:"value"`
	Type      string          `json:"type" binding:"required,oneof=Percentage Fixed"`
	ExpiresAt time.Time       `json:"expires_at" binding:"required"`
	UserID    *uint64         `json:"user_id"`
}
