package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type PaymentMethod struct {
	Repo[models.PaymentMethod]
}

func NewPaymentMethod(db *gorm.DB) *PaymentMethod {
	return &PaymentMethod{Repo: NewRepo[models.PaymentMethod](db)}
}

func (p *PaymentMethod) Tx(tx *gorm.DB) *PaymentMethod {
	return NewPaymentMethod(tx)
}

func (p *PaymentMethod) ListByUser(ctx context.Context, userID uint64) ([]*models.PaymentMethod, error) {
	var items []*models.PaymentMethod
	err := p.Db.WithContext(ctx).Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").Find(&items).Error
	return items, err
}

func (p *PaymentMethod) FindByUser(ctx context.Context, userID, id uint64) (*models.PaymentMethod, error) {
	return p.FindByWhere(ctx, "id = ? AND user_id = ?", id, userID)
}

// ClearDefault 取消该用户所有默认标记
func (p *PaymentMethod) ClearDefault(ctx context.Context, userID uint64) error {
	return p.Db.WithContext(ctx).Model(&models.PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func (p *PaymentMethod) DeleteByUser(ctx context.Context, userID, id uint64) (int64, error) {
	res := p.Db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.PaymentMethod{})
	return res.RowsAffected, res.Error
}
