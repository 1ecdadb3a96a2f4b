package models

import "time"

type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_reviews_user_product;column:user_id" json:"user_id"`
	ProductID uint64    `gorm:"not null;uniqueIndex:idx_reviews_user_product;index:idx_reviews_product;column:product_id" json:"product_id"`
	Rating    int       `gorm:"not null;column:rating" json:"rating"`
	Comment   string    `gorm:"type:text;column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
