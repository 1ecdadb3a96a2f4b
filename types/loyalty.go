package types

import (
	"Storefront/models"
	"time"

	"github.com/shopspring/decimal"
)

type TierInfo struct {
	Name           string          `json:"name"`
	RequiredPoints int64           `json:"required_points"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	Perks          []string        `json:"perks"`
}

// LoyaltyStatus 等级以会员记录为准，不随余额自动变化
type LoyaltyStatus struct {
	Tier     TierInfo  `json:"tier"`
	Balance  int64     `json:"balance"`
	NextTier *TierInfo `json:"next_tier,omitempty"`
}

type EnrollResult struct {
	UserID     uint64    `json:"user_id"`
	Tier       TierInfo  `json:"tier"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type RedeemResult struct {
	Transaction *models.LoyaltyTransaction `json:"transaction"`
	Coupon      *models.Coupon             `json:"coupon"`
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type CreateLoyaltyTxRequest struct {
	UserID      uint64 `json:"user_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Points      int64  `json:"points"`
	Description string `json:"description" binding:"max=255"`
	Pending     bool   `json:"pending"` // 为 true 时以 Pending 状态入账，等待人工确认
}

type FailLoyaltyTxRequest struct {
	Status string `json:"status" binding:"required,oneof=Cancelled Failed"`
}

type UpsertTierRequest struct {
	Name           string          `json:"name" binding:"required,max=50"`
	RequiredPoints int64           `json:"required_points" binding:"gte=0"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	Perks          []string        `json:"perks" binding:"omitempty,dive,required,max=255"`
}

type SetTierRequest struct {
	TierName string `json:"tier_name" binding:"required"`
}

type RewardRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	PointsRequired int64           `json:"points_required" binding:"gte=0"`
	Description    string          `json:"description" binding:"max=500"`
	ValidityDays   int             `json:"validity_days" binding:"required,min=1"`
	Type           string          `json:"type" binding:"required,oneof=Percentage Fixed"`
	Value          decimal.Decimal `json:"value"`
	IsActive       *bool           `json:"is_active"`
}

// UpdateRewardRequest 字段为空表示不修改
type UpdateRewardRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	PointsRequired *int64           `json:"points_required" binding:"omitempty,gte=0"`
	Description    *string          `json:"description" binding:"omitempty,max=500"`
	ValidityDays   *int             `json:"validity_days" binding:"omitempty,min=1"`
	Type           *string          `json:"type" binding:"omitempty,oneof=Percentage Fixed"`
	Value          *decimal.Decimal `json:"value"`
	IsActive       *bool            `json:"is_active"`
}
