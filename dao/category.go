package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Category struct {
	Repo[models.Category]
}

func NewCategory(db *gorm.DB) *Category {
	return &Category{Repo: NewRepo[models.Category](db)}
}

func (c *Category) List(ctx context.Context) ([]*models.Category, error) {
	var items []*models.Category
	err := c.Db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

// DeleteDetach 删除分类并把所属商品的分类置空
func (c *Category) DeleteDetach(ctx context.Context, id uint64) (int64, error) {
	var rows int64
	err := c.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		rows = res.RowsAffected
		return res.Error
	})
	return rows, err
}
