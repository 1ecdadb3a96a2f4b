package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Coupon struct {
	Repo[models.Coupon]
}

func NewCoupon(db *gorm.DB) *Coupon {
	return &Coupon{Repo: NewRepo[models.Coupon](db)}
}

func (c *Coupon) Tx(tx *gorm.DB) *Coupon {
	return NewCoupon(tx)
}

func (c *Coupon) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return c.FindByWhere(ctx, "code = ?", code)
}

func (c *Coupon) FindByCodeForUpdate(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := c.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("code = ?", code).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// MarkUsed 只有未使用的券会被更新，返回 0 表示已被使用或不存在
func (c *Coupon) MarkUsed(ctx context.Context, code string) (int64, error) {
	res := c.Db.WithContext(ctx).Model(&models.Coupon{}).
		Where("code = ? AND is_used = ?", code, false).
		Update("is_used", true)
	return res.RowsAffected, res.Error
}

func (c *Coupon) ListByUser(ctx context.Context, userID uint64) ([]*models.Coupon, error) {
	var items []*models.Coupon
	err := c.Db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&items).Error
	return items, err
}
