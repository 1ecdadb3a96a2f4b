package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Cart struct {
	Repo[models.Cart]
}

func NewCart(db *gorm.DB) *Cart {
	return &Cart{Repo: NewRepo[models.Cart](db)}
}

func (c *Cart) Tx(tx *gorm.DB) *Cart {
	return NewCart(tx)
}

func (c *Cart) FindByUser(ctx context.Context, userID uint64) (*models.Cart, error) {
	return c.FindByWhere(ctx, "user_id = ?", userID)
}

// FindByUserForUpdate 锁住购物车行，所有明细变更都在这把锁下进行
func (c *Cart) FindByUserForUpdate(ctx context.Context, userID uint64) (*models.Cart, error) {
	var cart models.Cart
	err := c.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindWithItems 读取购物车及明细、商品快照
func (c *Cart) FindWithItems(ctx context.Context, userID uint64) (*models.Cart, error) {
	var cart models.Cart
	err := c.Db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Cart) SaveTotals(ctx context.Context, cart *models.Cart) error {
	return c.Db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]any{
			"subtotal":                 cart.Subtotal,
			"total":                    cart.Total,
			"estimated_loyalty_points": cart.EstimatedLoyaltyPoints,
		}).Error
}

func (c *Cart) FindItem(ctx context.Context, cartID, itemID uint64) (*models.CartItem, error) {
	var item models.CartItem
	err := c.Db.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindVariant 同一商品、尺码、颜色的明细，空值按 NULL 匹配
func (c *Cart) FindVariant(ctx context.Context, cartID, productID uint64, size, color *string) (*models.CartItem, error) {
	query := c.Db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID)
	if size == nil {
		query = query.Where("size IS NULL")
	} else {
		query = query.Where("size = ?", *size)
	}
	if color == nil {
		query = query.Where("color IS NULL")
	} else {
		query = query.Where("color = ?", *color)
	}

	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Cart) ListItems(ctx context.Context, cartID uint64) ([]*models.CartItem, error) {
	var items []*models.CartItem
	err := c.Db.WithContext(ctx).Preload("Product").
		Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error
	return items, err
}

func (c *Cart) CreateItem(ctx context.Context, item *models.CartItem) error {
	return c.Db.WithContext(ctx).Create(item).Error
}

func (c *Cart) SaveItem(ctx context.Context, item *models.CartItem) error {
	return c.Db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"quantity": item.Quantity,
			"size":     item.Size,
			"color":    item.Color,
		}).Error
}

func (c *Cart) DeleteItem(ctx context.Context, itemID uint64) error {
	return c.Db.WithContext(ctx).Delete(&models.CartItem{}, itemID).Error
}

func (c *Cart) DeleteItems(ctx context.Context, cartID uint64) error {
	return c.Db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
