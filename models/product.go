package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ProductStatusOff int8 = 0
	ProductStatusOn  int8 = 1
)

type Category struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_categories_name;column:name" json:"name"`
	Description string    `gorm:"size:500;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Product 商品，Price 单位为元，保留两位小数
type Product struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CategoryID    *uint64         `gorm:"index:idx_products_category;column:category_id" json:"category_id"`
	Name          string          `gorm:"size:255;not null;column:name" json:"name"`
	Description   string          `gorm:"type:text;column:description" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;column:price" json:"price"`
	Stock         int             `gorm:"not null;default:0;column:stock" json:"stock"`
	LoyaltyPoints int64           `gorm:"not null;default:0;column:loyalty_points" json:"loyalty_points"` // 每件商品可获得的积分
	CoverImage    string          `gorm:"size:512;default:'';column:cover_image" json:"cover_image"`
	Status        int8            `gorm:"not null;index:idx_products_status;column:status" json:"status"`
	Sizes         []ProductSize   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
	Colors        []ProductColor  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index:idx_products_deleted_at;column:deleted_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

type ProductSize struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID uint64 `gorm:"not null;uniqueIndex:idx_product_size;column:product_id" json:"product_id"`
	Size      string `gorm:"size:32;not null;uniqueIndex:idx_product_size;column:size" json:"size"`
}

func (ProductSize) TableName() string {
	return "product_sizes"
}

type ProductColor struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID uint64 `gorm:"not null;uniqueIndex:idx_product_color;column:product_id" json:"product_id"`
	Name      string `gorm:"size:32;not null;uniqueIndex:idx_product_color;column:name" json:"name"`
}

func (ProductColor) TableName() string {
	return "product_colors"
}
