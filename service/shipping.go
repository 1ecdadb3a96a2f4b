package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/errs"
	"Storefront/types"
	"context"
)

var _ IShippingService = (*ShippingService)(nil)

type IShippingService interface {
	List(ctx context.Context, activeOnly bool) ([]*models.ShippingOption, error)
	Create(ctx context.Context, req *types.ShippingOptionRequest) (*models.ShippingOption, error)
	Update(ctx context.Context, id uint64, req *types.ShippingOptionRequest) (*models.ShippingOption, error)
	Delete(ctx context.Context, id uint64) error
}

type ShippingService struct {
	ShippingRepo *dao.Shipping
}

func (s *ShippingService) List(ctx context.Context, activeOnly bool) ([]*models.ShippingOption, error) {
	return s.ShippingRepo.List(ctx, activeOnly)
}

func (s *ShippingService) Create(ctx context.Context, req *types.ShippingOptionRequest) (*models.ShippingOption, error) {
	if req.Price.IsNegative() {
		return nil, errs.New(errs.InvalidInput, "price must be non-negative")
	}
	exist, err := s.ShippingRepo.IsExist(ctx, "name = ?", req.Name)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrShippingExists
	}

	option := &models.ShippingOption{
		Name:          req.Name,
		Price:         req.Price,
		EstimatedDays: req.EstimatedDays,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := s.ShippingRepo.Create(ctx, option); err != nil {
		if dao.IsDuplicate(err) {
			return nil, ErrShippingExists
		}
		return nil, err
	}
	return option, nil
}

func (s *ShippingService) Update(ctx context.Context, id uint64, req *types.ShippingOptionRequest) (*models.ShippingOption, error) {
	if req.Price.IsNegative() {
		return nil, errs.New(errs.InvalidInput, "price must be non-negative")
	}
	option, err := s.ShippingRepo.FindById(ctx, id)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrShippingNotFound
		}
		return nil, err
	}
	if req.Name != option.Name {
		exist, err := s.ShippingRepo.IsExist(ctx, "name = ? AND id <> ?", req.Name, id)
		if err != nil {
			return nil, err
		}
		if exist {
			return nil, ErrShippingExists
		}
	}

	option.Name = req.Name
	option.Price = req.Price
	option.EstimatedDays = req.EstimatedDays
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}
	if _, err := s.ShippingRepo.UpdateById(ctx, id, map[string]any{
		"name":           option.Name,
		"price":          option.Price,
		"estimated_days": option.EstimatedDays,
		"is_active":      option.IsActive,
	}); err != nil {
		return nil, err
	}
	return option, nil
}

func (s *ShippingService) Delete(ctx context.Context, id uint64) error {
	rows, err := s.ShippingRepo.DeleteById(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrShippingNotFound
	}
	return nil
}
