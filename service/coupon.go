package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/errs"
	"Storefront/types"
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var _ ICouponService = (*CouponService)(nil)

type ICouponService interface {
	// Validate 校验优惠券并计算抵扣金额，不会核销
	Validate(ctx context.Context, caller Caller, code string, orderAmount decimal.Decimal) (*types.CouponValidation, error)
	// MarkUsed 兑换券只有领取人或管理员能核销
	MarkUsed(ctx context.Context, caller Caller, code string) (*models.Coupon, error)
	Create(ctx context.Context, req *types.CreateCouponRequest) (*models.Coupon, error)
	List(ctx context.Context) ([]*models.Coupon, error)
	ListMine(ctx context.Context, userID uint64) ([]*models.Coupon, error)
	Delete(ctx context.Context, id uint64) error
}

// Caller 发起请求的用户
type Caller struct {
	UserID  uint64
	IsAdmin bool
}

type CouponService struct {
	CouponRepo *dao.Coupon
}

func (s *CouponService) Validate(ctx context.Context, caller Caller, code string, orderAmount decimal.Decimal) (*types.CouponValidation, error) {
	if orderAmount.IsNegative() {
		return nil, errs.New(errs.InvalidInput, "order amount must be non-negative")
	}
	coupon, err := s.findUsable(ctx, caller, code)
	if err != nil {
		return nil, err
	}
	return applyCoupon(coupon, orderAmount, time.Now())
}

func (s *CouponService) MarkUsed(ctx context.Context, caller Caller, code string) (*models.Coupon, error) {
	coupon, err := s.findUsable(ctx, caller, code)
	if err != nil {
		return nil, err
	}
	rows, err := s.CouponRepo.MarkUsed(ctx, code)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrCouponAlreadyUsed
	}
	coupon.IsUsed = true
	return coupon, nil
}

// findUsable 别人的兑换券按不存在处理，不暴露券码是否有效
func (s *CouponService) findUsable(ctx context.Context, caller Caller, code string) (*models.Coupon, error) {
	coupon, err := s.CouponRepo.FindByCode(ctx, code)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	if !usableBy(coupon, caller) {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

func usableBy(coupon *models.Coupon, caller Caller) bool {
	return caller.IsAdmin || coupon.UserID == nil || *coupon.UserID == caller.UserID
}

func (s *CouponService) Create(ctx context.Context, req *types.CreateCouponRequest) (*models.Coupon, error) {
	if err := validateDiscount(req.Type, req.Value); err != nil {
		return nil, err
	}
	exist, err := s.CouponRepo.IsExist(ctx, "code = ?", req.Code)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrCouponExists
	}

	coupon := &models.Coupon{
		Code:      req.Code,
		Value:     req.Value,
		Type:      req.Type,
		ExpiresAt: req.ExpiresAt,
		UserID:    req.UserID,
	}
	if err := s.CouponRepo.Create(ctx, coupon); err != nil {
		if dao.IsDuplicate(err) {
			return nil, ErrCouponExists
		}
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) List(ctx context.Context) ([]*models.Coupon, error) {
	return s.CouponRepo.FindAll(ctx, "")
}

func (s *CouponService) ListMine(ctx context.Context, userID uint64) ([]*models.Coupon, error) {
	return s.CouponRepo.ListByUser(ctx, userID)
}

func (s *CouponService) Delete(ctx context.Context, id uint64) error {
	rows, err := s.CouponRepo.DeleteById(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCouponNotFound
	}
	return nil
}

// applyCoupon 抵扣金额不超过订单金额，百分比折扣保留两位小数
func applyCoupon(coupon *models.Coupon, orderAmount decimal.Decimal, now time.Time) (*types.CouponValidation, error) {
	if coupon.IsUsed {
		return nil, ErrCouponAlreadyUsed
	}
	if now.After(coupon.ExpiresAt) {
		return nil, ErrCouponExpired
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case models.DiscountPercentage:
		discount = orderAmount.Mul(coupon.Value).Div(hundred).Round(2)
	case models.DiscountFixed:
		discount = coupon.Value
	default:
		return nil, ErrInvalidDiscount
	}
	if discount.GreaterThan(orderAmount) {
		discount = orderAmount
	}

	return &types.CouponValidation{
		IsValid:        true,
		DiscountAmount: discount,
		FinalAmount:    orderAmount.Sub(discount),
	}, nil
}

func validateDiscount(discountType string, value decimal.Decimal) error {
	switch discountType {
	case models.DiscountPercentage:
		if !value.IsPositive() || value.GreaterThan(hundred) {
			return errs.New(errs.InvalidInput, "percentage value must be in (0, 100]")
		}
	case models.DiscountFixed:
		if !value.IsPositive() {
			return errs.New(errs.InvalidInput, "fixed value must be positive")
		}
	default:
		return ErrInvalidDiscount
	}
	return nil
}
