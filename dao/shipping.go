package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Shipping struct {
	Repo[models.ShippingOption]
}

func NewShipping(db *gorm.DB) *Shipping {
	return &Shipping{Repo: NewRepo[models.ShippingOption](db)}
}

func (s *Shipping) Tx(tx *gorm.DB) *Shipping {
	return NewShipping(tx)
}

func (s *Shipping) List(ctx context.Context, activeOnly bool) ([]*models.ShippingOption, error) {
	var items []*models.ShippingOption
	query := s.Db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("price ASC, id ASC").Find(&items).Error
	return items, err
}
