package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/errs"
	"Storefront/types"
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ ICartService = (*CartService)(nil)

type ICartService interface {
	GetOrCreateCart(ctx context.Context, userID uint64) (*models.Cart, error)
	// GetCart 购物车及明细、商品快照
	GetCart(ctx context.Context, userID uint64) (*models.Cart, error)
	AddItem(ctx context.Context, userID uint64, req *types.AddCartItemRequest) (*models.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID uint64, req *types.UpdateCartItemRequest) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uint64) error
	ClearCart(ctx context.Context, userID uint64) error
}

type CartService struct {
	DB          *gorm.DB
	CartRepo    *dao.Cart
	ProductRepo *dao.Product
}

// cartDelta 一次明细变更对汇总字段的增量，reset 表示清零
type cartDelta struct {
	subtotal decimal.Decimal
	points   int64
	reset    bool
}

type cartMutation func(tx *gorm.DB, cart *models.Cart) (cartDelta, error)

func (s *CartService) GetOrCreateCart(ctx context.Context, userID uint64) (*models.Cart, error) {
	return s.getOrCreate(ctx, s.CartRepo, userID, false)
}

func (s *CartService) GetCart(ctx context.Context, userID uint64) (*models.Cart, error) {
	if _, err := s.GetOrCreateCart(ctx, userID); err != nil {
		return nil, err
	}
	return s.CartRepo.FindWithItems(ctx, userID)
}

func (s *CartService) AddItem(ctx context.Context, userID uint64, req *types.AddCartItemRequest) (*models.CartItem, error) {
	if req.Quantity < 1 {
		return nil, errs.New(errs.InvalidInput, "quantity must be at least 1")
	}

	var result *models.CartItem
	err := s.mutate(ctx, userID, func(tx *gorm.DB, cart *models.Cart) (cartDelta, error) {
		cartRepo := s.CartRepo.Tx(tx)
		productRepo := s.ProductRepo.Tx(tx)

		product, err := s.saleableProduct(ctx, productRepo, req.ProductID)
		if err != nil {
			return cartDelta{}, err
		}
		if err := checkVariant(ctx, productRepo, product.ID, req.Size, req.Color); err != nil {
			return cartDelta{}, err
		}

		item, err := cartRepo.FindVariant(ctx, cart.ID, product.ID, req.Size, req.Color)
		switch {
		case err == nil:
			// 同款合并，库存按合并后的数量校验
			if product.Stock < item.Quantity+req.Quantity {
				return cartDelta{}, ErrInsufficientStock
			}
			item.Quantity += req.Quantity
			if err := cartRepo.SaveItem(ctx, item); err != nil {
				return cartDelta{}, err
			}
		case dao.IsNotFound(err):
			if product.Stock < req.Quantity {
				return cartDelta{}, ErrInsufficientStock
			}
			item = &models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  req.Quantity,
				Size:      req.Size,
				Color:     req.Color,
			}
			if err := cartRepo.CreateItem(ctx, item); err != nil {
				return cartDelta{}, err
			}
		default:
			return cartDelta{}, err
		}

		item.Product = product
		result = item
		return lineDelta(product, req.Quantity), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateItem 按商品当前价格计算差额，商品改价会影响已在购物车中的金额
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint64, req *types.UpdateCartItemRequest) (*models.CartItem, error) {
	if req.Quantity != nil && *req.Quantity < 1 {
		return nil, errs.New(errs.InvalidInput, "quantity must be at least 1")
	}

	var result *models.CartItem
	err := s.mutate(ctx, userID, func(tx *gorm.DB, cart *models.Cart) (cartDelta, error) {
		cartRepo := s.CartRepo.Tx(tx)
		productRepo := s.ProductRepo.Tx(tx)

		item, err := cartRepo.FindItem(ctx, cart.ID, itemID)
		if err != nil {
			if dao.IsNotFound(err) {
				return cartDelta{}, ErrItemNotFound
			}
			return cartDelta{}, err
		}
		product, err := s.saleableProduct(ctx, productRepo, item.ProductID)
		if err != nil {
			return cartDelta{}, err
		}

		oldQty := item.Quantity
		newQty := oldQty
		if req.Quantity != nil {
			newQty = *req.Quantity
		}
		size, color := item.Size, item.Color
		if req.Size != nil {
			size = req.Size
		}
		if req.Color != nil {
			color = req.Color
		}
		if err := checkVariant(ctx, productRepo, product.ID, size, color); err != nil {
			return cartDelta{}, err
		}

		target := item
		if !sameOpt(size, item.Size) || !sameOpt(color, item.Color) {
			other, err := cartRepo.FindVariant(ctx, cart.ID, product.ID, size, color)
			switch {
			case err == nil:
				// 改规格后与已有明细相同，合并到已有明细
				if product.Stock < other.Quantity+newQty {
					return cartDelta{}, ErrInsufficientStock
				}
				other.Quantity += newQty
				if err := cartRepo.SaveItem(ctx, other); err != nil {
					return cartDelta{}, err
				}
				if err := cartRepo.DeleteItem(ctx, item.ID); err != nil {
					return cartDelta{}, err
				}
				other.Product = product
				result = other
				return lineDelta(product, newQty-oldQty), nil
			case !dao.IsNotFound(err):
				return cartDelta{}, err
			}
		}

		if product.Stock < newQty {
			return cartDelta{}, ErrInsufficientStock
		}
		target.Quantity = newQty
		target.Size = size
		target.Color = color
		if err := cartRepo.SaveItem(ctx, target); err != nil {
			return cartDelta{}, err
		}
		target.Product = product
		result = target
		return lineDelta(product, newQty-oldQty), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint64) error {
	return s.mutate(ctx, userID, func(tx *gorm.DB, cart *models.Cart) (cartDelta, error) {
		cartRepo := s.CartRepo.Tx(tx)

		item, err := cartRepo.FindItem(ctx, cart.ID, itemID)
		if err != nil {
			if dao.IsNotFound(err) {
				return cartDelta{}, ErrItemNotFound
			}
			return cartDelta{}, err
		}
		product, err := s.ProductRepo.Tx(tx).FindUnscoped(ctx, item.ProductID)
		if err != nil {
			return cartDelta{}, err
		}
		if err := cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return cartDelta{}, err
		}
		return lineDelta(product, -item.Quantity), nil
	})
}

func (s *CartService) ClearCart(ctx context.Context, userID uint64) error {
	return s.mutate(ctx, userID, clearItems(ctx, s.CartRepo))
}

// mutate 明细与汇总在同一事务内更新，所有明细写入都必须经过这里
func (s *CartService) mutate(ctx context.Context, userID uint64, fn cartMutation) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.apply(ctx, tx, userID, fn)
	})
}

// apply 在调用方事务内锁住购物车并应用变更，下单清空购物车也走这里
func (s *CartService) apply(ctx context.Context, tx *gorm.DB, userID uint64, fn cartMutation) error {
	cartRepo := s.CartRepo.Tx(tx)
	cart, err := s.getOrCreate(ctx, cartRepo, userID, true)
	if err != nil {
		return err
	}

	delta, err := fn(tx, cart)
	if err != nil {
		return err
	}

	if delta.reset {
		cart.Subtotal = decimal.Zero
		cart.EstimatedLoyaltyPoints = 0
	} else {
		cart.Subtotal = cart.Subtotal.Add(delta.subtotal)
		cart.EstimatedLoyaltyPoints += delta.points
	}
	// 购物车层不计运费和税
	cart.Total = cart.Subtotal
	return cartRepo.SaveTotals(ctx, cart)
}

func (s *CartService) getOrCreate(ctx context.Context, repo *dao.Cart, userID uint64, lock bool) (*models.Cart, error) {
	find := repo.FindByUser
	if lock {
		find = repo.FindByUserForUpdate
	}

	cart, err := find(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !dao.IsNotFound(err) {
		return nil, err
	}

	cart = &models.Cart{
		UserID:   userID,
		Subtotal: decimal.Zero,
		Total:    decimal.Zero,
	}
	if err := repo.Create(ctx, cart); err != nil {
		if dao.IsDuplicate(err) {
			return find(ctx, userID)
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) saleableProduct(ctx context.Context, repo *dao.Product, id uint64) (*models.Product, error) {
	product, err := repo.FindById(ctx, id)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.Status != models.ProductStatusOn {
		return nil, ErrProductOffShelf
	}
	return product, nil
}

func clearItems(ctx context.Context, repo *dao.Cart) cartMutation {
	return func(tx *gorm.DB, cart *models.Cart) (cartDelta, error) {
		if err := repo.Tx(tx).DeleteItems(ctx, cart.ID); err != nil {
			return cartDelta{}, err
		}
		return cartDelta{reset: true}, nil
	}
}

func checkVariant(ctx context.Context, repo *dao.Product, productID uint64, size, color *string) error {
	ok, err := repo.VariantAllowed(ctx, productID, size, color)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidVariant
	}
	return nil
}

func lineDelta(product *models.Product, quantity int) cartDelta {
	return cartDelta{
		subtotal: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		points:   product.LoyaltyPoints * int64(quantity),
	}
}

// RecomputeTotals 从明细重新汇总，只用于核对增量汇总是否漂移
func RecomputeTotals(items []*models.CartItem) (decimal.Decimal, int64) {
	subtotal := decimal.Zero
	var points int64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		qty := int64(item.Quantity)
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(qty)))
		points += item.Product.LoyaltyPoints * qty
	}
	return subtotal, points
}

func sameOpt(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
