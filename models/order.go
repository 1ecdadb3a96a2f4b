package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order 订单主表，金额在下单时锁定
type Order struct {
	ID               uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderSn          string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_orders_sn;column:order_sn" json:"order_sn"`
	UserID           uint64          `gorm:"not null;index:idx_orders_user;column:user_id" json:"user_id"`
	Status           string          `gorm:"size:20;not null;default:pending;column:status" json:"status"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null;column:subtotal" json:"subtotal"`
	Discount         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:discount" json:"discount"`
	ShippingFee      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shipping_fee" json:"shipping_fee"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null;column:total" json:"total"`
	LoyaltyPoints    int64           `gorm:"not null;default:0;column:loyalty_points" json:"loyalty_points"`
	PointsAwarded    bool            `gorm:"not null;default:false;column:points_awarded" json:"points_awarded"`
	CouponCode       *string         `gorm:"size:64;column:coupon_code" json:"coupon_code,omitempty"`
	ShippingOptionID *uint64         `gorm:"column:shipping_option_id" json:"shipping_option_id,omitempty"`
	PaymentMethodID  *uint64         `gorm:"column:payment_method_id" json:"payment_method_id,omitempty"`
	ShippingAddress  datatypes.JSON  `gorm:"column:shipping_address" json:"shipping_address,omitempty"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID     uint64          `gorm:"not null;index:idx_order_items_order;column:order_id" json:"order_id"`
	ProductID   uint64          `gorm:"not null;index:idx_order_items_product;column:product_id" json:"product_id"`
	ProductName string          `gorm:"size:255;not null;column:product_name" json:"product_name"` // 冗余商品名称，防止原商品删除/更名
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;column:unit_price" json:"unit_price"`
	Quantity    int             `gorm:"not null;column:quantity" json:"quantity"`
	Size        *string         `gorm:"size:32;column:size" json:"size,omitempty"`
	Color       *string         `gorm:"size:32;column:color" json:"color,omitempty"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;column:subtotal" json:"subtotal"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
