package dao

import (
	"Storefront/dao/cache"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewCategory,
	NewProduct,
	NewCart,
	NewOrder,
	NewLoyalty,
	NewCoupon,
	NewReview,
	NewShipping,
	NewPaymentMethod,
	cache.NewRedeemLock,
	cache.NewProductCache,
)
