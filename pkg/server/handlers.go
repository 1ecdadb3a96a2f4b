package server

import (
	"Storefront/handler"
)

type Handlers struct {
	Auth     *handler.Auth
	Category *handler.Category
	Product  *handler.Product
	Cart     *handler.Cart
	Order    *handler.Order
	Loyalty  *handler.Loyalty
	Coupon   *handler.Coupon
	Review   *handler.Review
	Shipping *handler.Shipping
	Payment  *handler.Payment
}
