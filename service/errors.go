package service

import "Storefront/pkg/errs"

// 业务错误，handler 经 context.Wrap 按 Kind 映射 HTTP 状态码
var (
	ErrEmailExists        = errs.New(errs.Conflict, "email already registered")
	ErrLoginFailed        = errs.New(errs.Unauthorized, "invalid email or password")
	ErrUserNotFound       = errs.New(errs.NotFound, "user not found")
	ErrCategoryNotFound   = errs.New(errs.NotFound, "category not found")
	ErrCategoryExists     = errs.New(errs.Conflict, "category already exists")
	ErrProductNotFound    = errs.New(errs.NotFound, "product not found")
	ErrProductOffShelf    = errs.New(errs.InvalidInput, "product is not on sale")
	ErrInvalidVariant     = errs.New(errs.InvalidInput, "size or color not available for product")
	ErrInsufficientStock  = errs.New(errs.InsufficientStock, "insufficient stock")
	ErrItemNotFound       = errs.New(errs.NotFound, "cart item not found")
	ErrCartEmpty          = errs.New(errs.InvalidInput, "cart is empty")
	ErrOrderNotFound      = errs.New(errs.NotFound, "order not found")
	ErrOrderStatus        = errs.New(errs.InvalidInput, "order status transition not allowed")
	ErrNotEnrolled        = errs.New(errs.NotFound, "user is not enrolled in loyalty program")
	ErrAlreadyEnrolled    = errs.New(errs.Conflict, "user already enrolled in loyalty program")
	ErrBaseTierMissing    = errs.New(errs.Configuration, "base loyalty tier is not configured")
	ErrTierNotFound       = errs.New(errs.NotFound, "loyalty tier not found")
	ErrInvalidTxType      = errs.New(errs.InvalidInput, "invalid loyalty transaction type")
	ErrInvalidPoints      = errs.New(errs.InvalidInput, "points must be non-negative")
	ErrTransactionState   = errs.New(errs.InvalidInput, "only pending transactions can change status")
	ErrTransactionMissing = errs.New(errs.NotFound, "loyalty transaction not found")
	ErrInsufficientPoints = errs.New(errs.InsufficientPoints, "insufficient points")
	ErrRewardNotFound     = errs.New(errs.NotFound, "reward not found")
	ErrRewardInactive     = errs.New(errs.InvalidInput, "reward is not active")
	ErrRedeemBusy         = errs.New(errs.Conflict, "redemption in progress")
	ErrCouponNotFound     = errs.New(errs.NotFound, "coupon not found")
	ErrCouponExists       = errs.New(errs.Conflict, "coupon code already exists")
	ErrCouponExpired      = errs.New(errs.Expired, "coupon expired")
	ErrCouponAlreadyUsed  = errs.New(errs.AlreadyUsed, "coupon already used")
	ErrInvalidDiscount    = errs.New(errs.InvalidInput, "invalid discount type")
	ErrReviewNotFound     = errs.New(errs.NotFound, "review not found")
	ErrReviewExists       = errs.New(errs.Conflict, "product already reviewed")
	ErrReviewForbidden    = errs.New(errs.Forbidden, "cannot delete review of another user")
	ErrShippingNotFound   = errs.New(errs.NotFound, "shipping option not found")
	ErrShippingExists     = errs.New(errs.Conflict, "shipping option already exists")
	ErrPaymentNotFound    = errs.New(errs.NotFound, "payment method not found")
	ErrInvalidImage       = errs.New(errs.InvalidInput, "invalid image")
)
