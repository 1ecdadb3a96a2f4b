package service

import (
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/snowflake"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orderSnPrefix = "SF"

// 订单状态只能向前流转
var orderTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped: {models.OrderStatusDelivered},
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	// Checkout 购物车下单，库存扣减、优惠券核销、清空购物车在同一事务内
	Checkout(ctx context.Context, userID uint64, req *types.CheckoutRequest) (*models.Order, error)
	List(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.CursorPage[*models.Order], error)
	Get(ctx context.Context, userID, orderID uint64) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID uint64) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint64, status string) (*models.Order, error)
}

type OrderService struct {
	DB           *gorm.DB
	OrderRepo    *dao.Order
	CartRepo     *dao.Cart
	ProductRepo  *dao.Product
	CouponRepo   *dao.Coupon
	ShippingRepo *dao.Shipping
	PaymentRepo  *dao.PaymentMethod
	LoyaltyRepo  *dao.Loyalty
	UsersRepo    *dao.Users
	ProductCache *cache.ProductCache
	Cart         *CartService
	Notifier     INotifier
}

func (s *OrderService) Checkout(ctx context.Context, userID uint64, req *types.CheckoutRequest) (*models.Order, error) {
	now := time.Now()
	address, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderSn:          utils.GenerateOrderSn(orderSnPrefix, now, snowflake.GenID()),
		UserID:           userID,
		Status:           models.OrderStatusPending,
		ShippingOptionID: req.ShippingOptionID,
		PaymentMethodID:  req.PaymentMethodID,
		ShippingAddress:  address,
	}
	var productIDs []uint64

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRepo := s.CartRepo.Tx(tx)
		productRepo := s.ProductRepo.Tx(tx)

		cart, err := cartRepo.FindByUserForUpdate(ctx, userID)
		if err != nil {
			if dao.IsNotFound(err) {
				return ErrCartEmpty
			}
			return err
		}
		items, err := cartRepo.ListItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		wanted := make(map[uint64]int)
		for _, item := range items {
			if _, ok := wanted[item.ProductID]; !ok {
				productIDs = append(productIDs, item.ProductID)
			}
			wanted[item.ProductID] += item.Quantity
		}
		products, err := productRepo.FindByIdsForUpdate(ctx, productIDs)
		if err != nil {
			return err
		}

		for _, id := range productIDs {
			product, ok := products[id]
			if !ok {
				return ErrProductNotFound
			}
			if product.Status != models.ProductStatusOn {
				return ErrProductOffShelf
			}
			if product.Stock < wanted[id] {
				return ErrInsufficientStock
			}
			rows, err := productRepo.DecreaseStock(ctx, id, wanted[id])
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrInsufficientStock
			}
		}

		subtotal := decimal.Zero
		for _, item := range items {
			product := products[item.ProductID]
			line := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(line)
			order.LoyaltyPoints += product.LoyaltyPoints * int64(item.Quantity)
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
				Size:        item.Size,
				Color:       item.Color,
				Subtotal:    line,
			})
		}
		if !subtotal.Equal(cart.Subtotal) {
			log.L.Warn("cart subtotal drift",
				zap.Uint64("user_id", userID),
				zap.String("cart", cart.Subtotal.StringFixed(2)),
				zap.String("items", subtotal.StringFixed(2)),
			)
		}
		order.Subtotal = subtotal

		order.ShippingFee = decimal.Zero
		if req.ShippingOptionID != nil {
			option, err := s.ShippingRepo.Tx(tx).FindById(ctx, *req.ShippingOptionID)
			if err != nil {
				if dao.IsNotFound(err) {
					return ErrShippingNotFound
				}
				return err
			}
			if !option.IsActive {
				return ErrShippingNotFound
			}
			order.ShippingFee = option.Price
		}

		if req.PaymentMethodID != nil {
			if _, err := s.PaymentRepo.Tx(tx).FindByUser(ctx, userID, *req.PaymentMethodID); err != nil {
				if dao.IsNotFound(err) {
					return ErrPaymentNotFound
				}
				return err
			}
		}

		order.Discount = decimal.Zero
		if req.CouponCode != nil && *req.CouponCode != "" {
			discount, err := s.redeemCoupon(ctx, s.CouponRepo.Tx(tx), userID, *req.CouponCode, subtotal, now)
			if err != nil {
				return err
			}
			order.Discount = discount
			order.CouponCode = req.CouponCode
		}
		order.Total = order.Subtotal.Sub(order.Discount).Add(order.ShippingFee)

		if err := s.OrderRepo.Tx(tx).CreateWithItems(ctx, order); err != nil {
			return err
		}
		return s.Cart.apply(ctx, tx, userID, clearItems(ctx, s.CartRepo))
	})
	if err != nil {
		return nil, err
	}

	s.evictProducts(ctx, productIDs)
	if user, err := s.UsersRepo.FindById(ctx, userID); err == nil {
		sendNotification(ctx, s.Notifier, &Notification{
			To:       user.Email,
			Subject:  "Order " + order.OrderSn + " confirmed",
			Template: TemplateOrderConfirmed,
			Data: mustJSON(map[string]any{
				"order_sn": order.OrderSn,
				"total":    order.Total.StringFixed(2),
				"items":    len(order.Items),
			}),
		})
	}
	return order, nil
}

// redeemCoupon 校验并核销优惠券，兑换券只能由领取人使用
func (s *OrderService) redeemCoupon(ctx context.Context, repo *dao.Coupon, userID uint64, code string, amount decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	coupon, err := repo.FindByCodeForUpdate(ctx, code)
	if err != nil {
		if dao.IsNotFound(err) {
			return decimal.Zero, ErrCouponNotFound
		}
		return decimal.Zero, err
	}
	if !usableBy(coupon, Caller{UserID: userID}) {
		return decimal.Zero, ErrCouponNotFound
	}
	res, err := applyCoupon(coupon, amount, now)
	if err != nil {
		return decimal.Zero, err
	}
	rows, err := repo.MarkUsed(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	if rows == 0 {
		return decimal.Zero, ErrCouponAlreadyUsed
	}
	return res.DiscountAmount, nil
}

func (s *OrderService) List(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.CursorPage[*models.Order], error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	orders, err := s.OrderRepo.ListByCursor(ctx, userID, cursor, limit+1)
	if err != nil {
		return nil, err
	}
	return cursorPage(orders, limit, func(o *models.Order) uint64 { return o.ID }), nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID uint64) (*models.Order, error) {
	order, err := s.OrderRepo.FindByUser(ctx, userID, orderID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// Cancel 用户只能取消待支付订单
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uint64) (*models.Order, error) {
	return s.transition(ctx, orderID, func(order *models.Order) error {
		if order.UserID != userID {
			return ErrOrderNotFound
		}
		if order.Status != models.OrderStatusPending {
			return ErrOrderStatus
		}
		return nil
	}, models.OrderStatusCancelled)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint64, status string) (*models.Order, error) {
	return s.transition(ctx, orderID, nil, status)
}

func (s *OrderService) transition(ctx context.Context, orderID uint64, check func(*models.Order) error, status string) (*models.Order, error) {
	var (
		order      *models.Order
		productIDs []uint64
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.OrderRepo.Tx(tx).FindWithItemsForUpdate(ctx, orderID)
		if err != nil {
			if dao.IsNotFound(err) {
				return ErrOrderNotFound
			}
			return err
		}
		if check != nil {
			if err := check(found); err != nil {
				return err
			}
		}
		if !canTransit(found.Status, status) {
			return ErrOrderStatus
		}

		data := map[string]any{"status": status}
		switch status {
		case models.OrderStatusCancelled:
			productRepo := s.ProductRepo.Tx(tx)
			for _, item := range found.Items {
				if err := productRepo.IncreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
				productIDs = append(productIDs, item.ProductID)
			}
		case models.OrderStatusDelivered:
			if !found.PointsAwarded {
				awarded, err := awardOrderPoints(ctx, s.LoyaltyRepo.Tx(tx), found)
				if err != nil {
					return err
				}
				if awarded {
					data["points_awarded"] = true
					found.PointsAwarded = true
				}
			}
		}

		if _, err := s.OrderRepo.Tx(tx).UpdateById(ctx, found.ID, data); err != nil {
			return err
		}
		found.Status = status
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.evictProducts(ctx, productIDs)
	return order, nil
}

func (s *OrderService) evictProducts(ctx context.Context, ids []uint64) {
	if s.ProductCache == nil {
		return
	}
	for _, id := range ids {
		if err := s.ProductCache.Del(ctx, id); err != nil {
			log.L.Warn("evict product cache failed", zap.Uint64("product_id", id), zap.Error(err))
		}
	}
}

func canTransit(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
