package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

func (p *Product) Tx(tx *gorm.DB) *Product {
	return NewProduct(tx)
}

// FindDetail 带尺码、颜色
func (p *Product) FindDetail(ctx context.Context, id uint64) (*models.Product, error) {
	var product models.Product
	err := p.Db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByCursor 按 ID 倒序游标分页，多查一条用于判断 has_more
func (p *Product) ListByCursor(ctx context.Context, categoryID uint64, onlyOn bool, cursor uint64, limit int) ([]*models.Product, error) {
	var products []*models.Product
	query := p.Db.WithContext(ctx)
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if onlyOn {
		query = query.Where("status = ?", models.ProductStatusOn)
	}
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (p *Product) ReplaceVariants(ctx context.Context, productID uint64, sizes, colors []string) error {
	db := p.Db.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductSize{}).Error; err != nil {
		return err
	}
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductColor{}).Error; err != nil {
		return err
	}
	if len(sizes) > 0 {
		rows := make([]models.ProductSize, 0, len(sizes))
		for _, s := range sizes {
			rows = append(rows, models.ProductSize{ProductID: productID, Size: s})
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(colors) > 0 {
		rows := make([]models.ProductColor, 0, len(colors))
		for _, c := range colors {
			rows = append(rows, models.ProductColor{ProductID: productID, Name: c})
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// VariantAllowed 商品未声明该维度时视为不限制
func (p *Product) VariantAllowed(ctx context.Context, productID uint64, size, color *string) (bool, error) {
	db := p.Db.WithContext(ctx)
	if size != nil {
		var total, hit int64
		if err := db.Model(&models.ProductSize{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
			return false, err
		}
		if total > 0 {
			if err := db.Model(&models.ProductSize{}).Where("product_id = ? AND size = ?", productID, *size).Count(&hit).Error; err != nil {
				return false, err
			}
			if hit == 0 {
				return false, nil
			}
		}
	}
	if color != nil {
		var total, hit int64
		if err := db.Model(&models.ProductColor{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
			return false, err
		}
		if total > 0 {
			if err := db.Model(&models.ProductColor{}).Where("product_id = ? AND name = ?", productID, *color).Count(&hit).Error; err != nil {
				return false, err
			}
			if hit == 0 {
				return false, nil
			}
		}
	}
	return true, nil
}

// DecreaseStock 条件扣减库存，返回受影响行数为 0 表示库存不足
func (p *Product) DecreaseStock(ctx context.Context, productID uint64, quantity int) (int64, error) {
	res := p.Db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	return res.RowsAffected, res.Error
}

func (p *Product) IncreaseStock(ctx context.Context, productID uint64, quantity int) error {
	return p.Db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}

func (p *Product) FindByIdsForUpdate(ctx context.Context, ids []uint64) (map[uint64]*models.Product, error) {
	var products []*models.Product
	err := p.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	res := make(map[uint64]*models.Product, len(products))
	for _, item := range products {
		res[item.ID] = item
	}
	return res, nil
}

// FindUnscoped 包含已软删除的商品，用于回滚购物车金额
func (p *Product) FindUnscoped(ctx context.Context, id uint64) (*models.Product, error) {
	var product models.Product
	if err := p.Db.WithContext(ctx).Unscoped().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
