package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/database"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	cfg     *config.Config
	redis   *miniredis.Miniredis
	loyalty *LoyaltyService
	cart    *CartService
	order   *OrderService
	coupon  *CouponService
}

// newTestEnv sqlite 内存库 + miniredis，单连接保证事务内外看到同一个库
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), 0)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return buildTestEnv(t, db)
}

func buildTestEnv(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	cfg := &config.Config{
		App:     &config.App{CodeSalt: "test-salt"},
		Loyalty: &config.Loyalty{LockTTL: 5 * time.Second, LockWait: 3 * time.Second},
	}

	users := dao.NewUsers(db)
	cartRepo := dao.NewCart(db)
	productRepo := dao.NewProduct(db)
	couponRepo := dao.NewCoupon(db)
	loyaltyRepo := dao.NewLoyalty(db)
	productCache := cache.NewProductCache(rds)

	cart := &CartService{DB: db, CartRepo: cartRepo, ProductRepo: productRepo}
	return &testEnv{
		db:    db,
		cfg:   cfg,
		redis: mr,
		cart:  cart,
		loyalty: &LoyaltyService{
			DB:          db,
			Config:      cfg,
			LoyaltyRepo: loyaltyRepo,
			CouponRepo:  couponRepo,
			UsersRepo:   users,
			RedeemLock:  cache.NewRedeemLock(rds, cfg),
			Notifier:    LogNotifier{},
		},
		order: &OrderService{
			DB:           db,
			OrderRepo:    dao.NewOrder(db),
			CartRepo:     cartRepo,
			ProductRepo:  productRepo,
			CouponRepo:   couponRepo,
			ShippingRepo: dao.NewShipping(db),
			PaymentRepo:  dao.NewPaymentMethod(db),
			LoyaltyRepo:  loyaltyRepo,
			UsersRepo:    users,
			ProductCache: productCache,
			Cart:         cart,
			Notifier:     LogNotifier{},
		},
		coupon: &CouponService{CouponRepo: couponRepo},
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Name: email, Role: models.RoleCustomer}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createProduct(t *testing.T, price string, stock int, points int64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          fmt.Sprintf("product-%s-%d", price, stock),
		Price:         decimal.RequireFromString(price),
		Stock:         stock,
		LoyaltyPoints: points,
		Status:        models.ProductStatusOn,
	}
	if err := e.db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func (e *testEnv) createReward(t *testing.T, points int64, validityDays int) *models.LoyaltyReward {
	t.Helper()
	reward := &models.LoyaltyReward{
		Name:           fmt.Sprintf("reward-%d", points),
		PointsRequired: points,
		ValidityDays:   validityDays,
		Type:           models.DiscountFixed,
		Value:          decimal.NewFromInt(10),
		IsActive:       true,
	}
	if err := e.db.Create(reward).Error; err != nil {
		t.Fatalf("create reward: %v", err)
	}
	return reward
}

func (e *testEnv) balance(t *testing.T, userID uint64) int64 {
	t.Helper()
	b, err := e.loyalty.GetBalance(context.Background(), userID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	return b
}

func (e *testEnv) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
