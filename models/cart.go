package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart 每个用户一个购物车，三个汇总字段随明细增量维护
type Cart struct {
	ID                     uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID                 uint64          `gorm:"not null;uniqueIndex:idx_carts_user;column:user_id" json:"user_id"`
	Subtotal               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:subtotal" json:"subtotal"`
	Total                  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total" json:"total"`
	EstimatedLoyaltyPoints int64           `gorm:"not null;default:0;column:estimated_loyalty_points" json:"estimated_loyalty_points"`
	Items                  []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt              time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CartID    uint64    `gorm:"not null;index:idx_cart_items_variant;column:cart_id" json:"cart_id"`
	ProductID uint64    `gorm:"not null;index:idx_cart_items_variant;column:product_id" json:"product_id"`
	Quantity  int       `gorm:"not null;column:quantity" json:"quantity"`
	Size      *string   `gorm:"size:32;index:idx_cart_items_variant;column:size" json:"size,omitempty"`
	Color     *string   `gorm:"size:32;index:idx_cart_items_variant;column:color" json:"color,omitempty"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
