package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(CategoryService), "*"),
	wire.Bind(new(ICategoryService), new(*CategoryService)),

	wire.Struct(new(ProductService), "*"),
	wire.Bind(new(IProductService), new(*ProductService)),

	wire.Struct(new(ImageService), "*"),
	wire.Bind(new(IImageService), new(*ImageService)),
	NewOssStorage,
	wire.Bind(new(ObjectStorage), new(*OssStorage)),

	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),

	wire.Struct(new(OrderService), "*"),
	wire.Bind(new(IOrderService), new(*OrderService)),

	wire.Struct(new(LoyaltyService), "*"),
	wire.Bind(new(ILoyaltyService), new(*LoyaltyService)),

	wire.Struct(new(CouponService), "*"),
	wire.Bind(new(ICouponService), new(*CouponService)),

	wire.Struct(new(ReviewService), "*"),
	wire.Bind(new(IReviewService), new(*ReviewService)),

	wire.Struct(new(ShippingService), "*"),
	wire.Bind(new(IShippingService), new(*ShippingService)),

	wire.Struct(new(PaymentService), "*"),
	wire.Bind(new(IPaymentService), new(*PaymentService)),

	NewNotifier,
)
