package models

// All 需要自动迁移的模型，顺序按外键依赖排列
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Product{},
		&ProductSize{},
		&ProductColor{},
		&Cart{},
		&CartItem{},
		&ShippingOption{},
		&PaymentMethod{},
		&Order{},
		&OrderItem{},
		&LoyaltyTier{},
		&LoyaltyTierPerk{},
		&LoyaltyEnrollment{},
		&LoyaltyTransaction{},
		&LoyaltyReward{},
		&Coupon{},
		&Review{},
	}
}
