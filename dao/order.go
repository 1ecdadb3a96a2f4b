package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{Repo: NewRepo[models.Order](db)}
}

func (o *Order) Tx(tx *gorm.DB) *Order {
	return NewOrder(tx)
}

// CreateWithItems 主单与明细一起写入，调用方负责开启事务
func (o *Order) CreateWithItems(ctx context.Context, order *models.Order) error {
	return o.Db.WithContext(ctx).Create(order).Error
}

func (o *Order) FindByUser(ctx context.Context, userID, orderID uint64) (*models.Order, error) {
	var order models.Order
	err := o.Db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *Order) FindWithItemsForUpdate(ctx context.Context, orderID uint64) (*models.Order, error) {
	var order models.Order
	err := o.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	if err := o.Db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCursor 按 ID 倒序游标分页
func (o *Order) ListByCursor(ctx context.Context, userID uint64, cursor uint64, limit int) ([]*models.Order, error) {
	var orders []*models.Order
	query := o.Db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Preload("Items").Order("id DESC").Limit(limit).Find(&orders).Error
	return orders, err
}
