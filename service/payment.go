package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/types"
	"context"

	"gorm.io/gorm"
)

var _ IPaymentService = (*PaymentService)(nil)

type IPaymentService interface {
	List(ctx context.Context, userID uint64) ([]*models.PaymentMethod, error)
	// Create 用户的第一个支付方式自动设为默认
	Create(ctx context.Context, userID uint64, req *types.PaymentMethodRequest) (*models.PaymentMethod, error)
	SetDefault(ctx context.Context, userID, id uint64) error
	Delete(ctx context.Context, userID, id uint64) error
}

type PaymentService struct {
	DB          *gorm.DB
	PaymentRepo *dao.PaymentMethod
}

func (s *PaymentService) List(ctx context.Context, userID uint64) ([]*models.PaymentMethod, error) {
	return s.PaymentRepo.ListByUser(ctx, userID)
}

func (s *PaymentService) Create(ctx context.Context, userID uint64, req *types.PaymentMethodRequest) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{
		UserID:    userID,
		Type:      req.Type,
		Provider:  req.Provider,
		Last4:     req.Last4,
		Expires:   req.Expires,
		IsDefault: req.IsDefault,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.PaymentRepo.Tx(tx)
		exist, err := repo.IsExist(ctx, "user_id = ?", userID)
		if err != nil {
			return err
		}
		if !exist {
			method.IsDefault = true
		}
		if method.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		return repo.Create(ctx, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

func (s *PaymentService) SetDefault(ctx context.Context, userID, id uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.PaymentRepo.Tx(tx)
		if _, err := repo.FindByUser(ctx, userID, id); err != nil {
			if dao.IsNotFound(err) {
				return ErrPaymentNotFound
			}
			return err
		}
		if err := repo.ClearDefault(ctx, userID); err != nil {
			return err
		}
		_, err := repo.UpdateById(ctx, id, map[string]any{"is_default": true})
		return err
	})
}

func (s *PaymentService) Delete(ctx context.Context, userID, id uint64) error {
	rows, err := s.PaymentRepo.DeleteByUser(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
