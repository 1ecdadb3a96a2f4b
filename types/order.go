package types

type ShippingAddress struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country" binding:"required"`
}

type CheckoutRequest struct {
	ShippingOptionID *uint64          `json:"shipping_option_id"`
	PaymentMethodID  *uint64          `json:"payment_method_id"`
	CouponCode       *string          `json:"coupon_code"`
	ShippingAddress  *ShippingAddress `json:"shipping_address" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}
