package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Review struct {
	Repo[models.Review]
}

func NewReview(db *gorm.DB) *Review {
	return &Review{Repo: NewRepo[models.Review](db)}
}

func (r *Review) ListByProduct(ctx context.Context, productID uint64, cursor uint64, limit int) ([]*models.Review, error) {
	var items []*models.Review
	query := r.Db.WithContext(ctx).Where("product_id = ?", productID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id DESC").Limit(limit).Find(&items).Error
	return items, err
}

// RatingSummary 商品评分均值与评价数
func (r *Review) RatingSummary(ctx context.Context, productID uint64) (float64, int64, error) {
	var res struct {
		Avg   float64
		Total int64
	}
	err := r.Db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Scan(&res).Error
	return res.Avg, res.Total, err
}

func (r *Review) FindByUserProduct(ctx context.Context, userID, productID uint64) (*models.Review, error) {
	return r.FindByWhere(ctx, "user_id = ? AND product_id = ?", userID, productID)
}
