package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 积分流水类型
const (
	TxTypeEarned    = "Earned"
	TxTypeRedeemed  = "Redeemed"
	TxTypeCancelled = "Cancelled"
	TxTypeExpired   = "Expired"
)

// 积分流水状态，Pending 之外均为终态
const (
	TxStatusPending   = "Pending"
	TxStatusCompleted = "Completed"
	TxStatusCancelled = "Cancelled"
	TxStatusFailed    = "Failed"
)

const (
	DiscountPercentage = "Percentage"
	DiscountFixed      = "Fixed"
)

type LoyaltyTier struct {
	Name           string            `gorm:"primaryKey;size:50;column:name" json:"name"`
	RequiredPoints int64             `gorm:"not null;uniqueIndex:idx_tiers_required;column:required_points" json:"required_points"`
	Multiplier     decimal.Decimal   `gorm:"type:decimal(6,2);not null;column:multiplier" json:"multiplier"`
	Perks          []LoyaltyTierPerk `gorm:"foreignKey:TierName;references:Name;constraint:OnDelete:CASCADE" json:"perks,omitempty"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoyaltyTier) TableName() string {
	return "loyalty_tiers"
}

type LoyaltyTierPerk struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement;column:id" json:"-"`
	TierName string `gorm:"size:50;not null;index:idx_perks_tier;column:tier_name" json:"-"`
	Position int    `gorm:"not null;column:position" json:"-"`
	Perk     string `gorm:"size:255;not null;column:perk" json:"perk"`
}

func (LoyaltyTierPerk) TableName() string {
	return "loyalty_tier_perks"
}

// LoyaltyEnrollment 用户与等级的绑定，等级只能人工调整
type LoyaltyEnrollment struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_enrollments_user;column:user_id" json:"user_id"`
	TierName   string    `gorm:"size:50;not null;column:tier_name" json:"tier_name"`
	EnrolledAt time.Time `gorm:"not null;column:enrolled_at" json:"enrolled_at"`
}

func (LoyaltyEnrollment) TableName() string {
	return "loyalty_enrollments"
}

// LoyaltyTransaction 积分流水，只追加不删除；余额由流水折叠得出
type LoyaltyTransaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID      uint64    `gorm:"not null;index:idx_loyalty_tx_user;column:user_id" json:"user_id"`
	Date        time.Time `gorm:"not null;column:date" json:"date"`
	Type        string    `gorm:"size:20;not null;column:type" json:"type"`
	Points      int64     `gorm:"not null;column:points" json:"points"`
	Description string    `gorm:"size:255;column:description" json:"description"`
	Status      string    `gorm:"size:20;not null;column:status" json:"status"`
	OrderID     *uint64   `gorm:"index:idx_loyalty_tx_order;column:order_id" json:"order_id,omitempty"`
}

func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}

type LoyaltyReward struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name           string          `gorm:"size:100;not null;column:name" json:"name"`
	PointsRequired int64           `gorm:"not null;column:points_required" json:"points_required"`
	Description    string          `gorm:"size:500;column:description" json:"description"`
	ValidityDays   int             `gorm:"not null;column:validity_days" json:"validity_days"`
	Type           string          `gorm:"size:20;not null;column:type" json:"type"`
	Value          decimal.Decimal `gorm:"type:decimal(12,2);not null;column:value" json:"value"`
	IsActive       bool            `gorm:"not null;column:is_active" json:"is_active"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoyaltyReward) TableName() string {
	return "loyalty_rewards"
}
