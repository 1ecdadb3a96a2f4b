package server

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/handler"
	"Storefront/models"
	"Storefront/pkg/database"
	"Storefront/service"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type testServer struct {
	engine http.Handler
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), 0)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
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
		App:     &config.App{CodeSalt: "server-test"},
		Server:  &config.Server{Http: 0},
		Jwt:     &config.Jwt{Secret: "server-test-secret", AccessExpire: time.Hour, RefreshExpire: 24 * time.Hour},
		Loyalty: &config.Loyalty{LockTTL: 5 * time.Second, LockWait: time.Second},
	}

	users := dao.NewUsers(db)
	categories := dao.NewCategory(db)
	products := dao.NewProduct(db)
	reviews := dao.NewReview(db)
	carts := dao.NewCart(db)
	coupons := dao.NewCoupon(db)
	shipping := dao.NewShipping(db)
	payments := dao.NewPaymentMethod(db)
	loyalty := dao.NewLoyalty(db)
	productCache := cache.NewProductCache(rds)
	notifier := service.LogNotifier{}

	cartSvc := &service.CartService{DB: db, CartRepo: carts, ProductRepo: products}
	h := &Handlers{
		Auth:     &handler.Auth{Config: cfg, AuthService: &service.AuthService{Config: cfg, UsersRepo: users}},
		Category: &handler.Category{Config: cfg, CategoryService: &service.CategoryService{CategoryRepo: categories}},
		Product: &handler.Product{
			Config: cfg,
			ProductService: &service.ProductService{
				DB: db, ProductRepo: products, CategoryRepo: categories, ReviewRepo: reviews, ProductCache: productCache,
			},
			ImageService: &service.ImageService{ProductRepo: products, ProductCache: productCache},
		},
		Cart: &handler.Cart{Config: cfg, CartService: cartSvc},
		Order: &handler.Order{Config: cfg, OrderService: &service.OrderService{
			DB: db, OrderRepo: dao.NewOrder(db), CartRepo: carts, ProductRepo: products, CouponRepo: coupons,
			ShippingRepo: shipping, PaymentRepo: payments, LoyaltyRepo: loyalty, UsersRepo: users,
			ProductCache: productCache, Cart: cartSvc, Notifier: notifier,
		}},
		Loyalty: &handler.Loyalty{Config: cfg, LoyaltyService: &service.LoyaltyService{
			DB: db, Config: cfg, LoyaltyRepo: loyalty, CouponRepo: coupons, UsersRepo: users,
			RedeemLock: cache.NewRedeemLock(rds, cfg), Notifier: notifier,
		}},
		Coupon:   &handler.Coupon{Config: cfg, CouponService: &service.CouponService{CouponRepo: coupons}},
		Review:   &handler.Review{Config: cfg, ReviewService: &service.ReviewService{ReviewRepo: reviews, ProductRepo: products}},
		Shipping: &handler.Shipping{Config: cfg, ShippingService: &service.ShippingService{ShippingRepo: shipping}},
		Payment:  &handler.Payment{Config: cfg, PaymentService: &service.PaymentService{DB: db, PaymentRepo: payments}},
	}
	return &testServer{engine: NewGinEngine(h), db: db}
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (s *testServer) call(t *testing.T, method, path, token string, body any, want int) json.RawMessage {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, w.Code, w.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return env.Data
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

// login 注册并登录，admin 为 true 时先提升为管理员
func (s *testServer) login(t *testing.T, email string, admin bool) (uint64, string) {
	t.Helper()
	creds := map[string]string{"email": email, "password": "password123"}
	user := decode[struct {
		ID uint64 `json:"id"`
	}](t, s.call(t, http.MethodPost, "/api/v1/auth/register", "", creds, http.StatusCreated))

	if admin {
		if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).Update("role", models.RoleAdmin).Error; err != nil {
			t.Fatalf("promote admin: %v", err)
		}
	}
	tokens := decode[struct {
		AccessToken string `json:"access_token"`
	}](t, s.call(t, http.MethodPost, "/api/v1/auth/login", "", creds, http.StatusOK))
	return user.ID, tokens.AccessToken
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLoyaltyFlow(t *testing.T) {
	s := newTestServer(t)
	userID, userToken := s.login(t, "shopper@example.com", false)
	_, adminToken := s.login(t, "admin@example.com", true)

	s.call(t, http.MethodGet, "/api/v1/loyalty/balance", userToken, nil, http.StatusNotFound)
	s.call(t, http.MethodPost, "/api/v1/loyalty/enroll", userToken, nil, http.StatusCreated)
	s.call(t, http.MethodPost, "/api/v1/loyalty/enroll", userToken, nil, http.StatusConflict)

	// 普通用户不能调整积分
	earn := map[string]any{"user_id": userID, "type": "Earned", "points": 250, "description": "welcome bonus"}
	s.call(t, http.MethodPost, "/api/v1/loyalty/transactions", userToken, earn, http.StatusForbidden)
	s.call(t, http.MethodPost, "/api/v1/loyalty/transactions", adminToken, earn, http.StatusCreated)

	reward := decode[struct {
		ID uint64 `json:"id"`
	}](t, s.call(t, http.MethodPost, "/api/v1/loyalty/rewards", adminToken, map[string]any{
		"name": "Ten off", "points_required": 200, "validity_days": 30, "type": "Fixed", "value": "10",
	}, http.StatusCreated))

	redeemPath := fmt.Sprintf("/api/v1/loyalty/rewards/%d/redeem", reward.ID)
	res := decode[struct {
		Coupon struct {
			Code   string `json:"code"`
			IsUsed bool   `json:"is_used"`
		} `json:"coupon"`
	}](t, s.call(t, http.MethodPost, redeemPath, userToken, nil, http.StatusCreated))
	if res.Coupon.Code == "" || res.Coupon.IsUsed {
		t.Fatalf("unexpected coupon %+v", res.Coupon)
	}

	balance := decode[struct {
		Balance int64 `json:"balance"`
	}](t, s.call(t, http.MethodGet, "/api/v1/loyalty/balance", userToken, nil, http.StatusOK))
	if balance.Balance != 50 {
		t.Fatalf("expected balance 50, got %d", balance.Balance)
	}
	s.call(t, http.MethodPost, redeemPath, userToken, nil, http.StatusUnprocessableEntity)

	validation := decode[struct {
		IsValid     bool   `json:"is_valid"`
		FinalAmount string `json:"final_amount"`
	}](t, s.call(t, http.MethodPost, "/api/v1/coupons/validate", userToken, map[string]any{
		"code": res.Coupon.Code, "order_amount": "25",
	}, http.StatusOK))
	if !validation.IsValid || validation.FinalAmount != "15" {
		t.Fatalf("unexpected validation %+v", validation)
	}

	mine := decode[[]struct {
		Code string `json:"code"`
	}](t, s.call(t, http.MethodGet, "/api/v1/coupons/mine", userToken, nil, http.StatusOK))
	if len(mine) != 1 || mine[0].Code != res.Coupon.Code {
		t.Fatalf("unexpected coupons %+v", mine)
	}

	// 别人的兑换券既查不到也核销不了
	_, otherToken := s.login(t, "other@example.com", false)
	usePath := "/api/v1/coupons/" + res.Coupon.Code + "/use"
	s.call(t, http.MethodPost, "/api/v1/coupons/validate", otherToken, map[string]any{
		"code": res.Coupon.Code, "order_amount": "25",
	}, http.StatusNotFound)
	s.call(t, http.MethodPost, usePath, otherToken, nil, http.StatusNotFound)
	s.call(t, http.MethodPost, "/api/v1/coupons/validate", userToken, map[string]any{
		"code": res.Coupon.Code, "order_amount": "25",
	}, http.StatusOK)
	s.call(t, http.MethodPost, usePath, userToken, nil, http.StatusOK)
	s.call(t, http.MethodPost, usePath, userToken, nil, http.StatusConflict)
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.login(t, "buyer@example.com", false)
	_, adminToken := s.login(t, "ops@example.com", true)

	s.call(t, http.MethodGet, "/api/v1/cart", "", nil, http.StatusUnauthorized)

	product := decode[struct {
		ID uint64 `json:"id"`
	}](t, s.call(t, http.MethodPost, "/api/v1/products", adminToken, map[string]any{
		"name": "Hoodie", "price": "40.00", "stock": 2, "loyalty_points": 40, "sizes": []string{"M", "L"},
	}, http.StatusCreated))

	s.call(t, http.MethodPost, "/api/v1/cart/items", userToken, map[string]any{
		"product_id": product.ID, "quantity": 1, "size": "XS",
	}, http.StatusBadRequest)
	s.call(t, http.MethodPost, "/api/v1/cart/items", userToken, map[string]any{
		"product_id": product.ID, "quantity": 3, "size": "M",
	}, http.StatusUnprocessableEntity)
	s.call(t, http.MethodPost, "/api/v1/cart/items", userToken, map[string]any{
		"product_id": product.ID, "quantity": 2, "size": "M",
	}, http.StatusCreated)

	cart := decode[struct {
		Subtotal               string `json:"subtotal"`
		EstimatedLoyaltyPoints int64  `json:"estimated_loyalty_points"`
	}](t, s.call(t, http.MethodGet, "/api/v1/cart", userToken, nil, http.StatusOK))
	if cart.Subtotal != "80" || cart.EstimatedLoyaltyPoints != 80 {
		t.Fatalf("unexpected cart %+v", cart)
	}

	order := decode[struct {
		ID    uint64 `json:"id"`
		Total string `json:"total"`
	}](t, s.call(t, http.MethodPost, "/api/v1/orders", userToken, map[string]any{
		"shipping_address": map[string]string{"name": "Ada", "line1": "1 Main St", "city": "London", "country": "GB"},
	}, http.StatusCreated))
	if order.Total != "80" {
		t.Fatalf("expected total 80, got %s", order.Total)
	}

	s.call(t, http.MethodPost, "/api/v1/orders", userToken, map[string]any{
		"shipping_address": map[string]string{"name": "Ada", "line1": "1 Main St", "city": "London", "country": "GB"},
	}, http.StatusBadRequest)

	statusPath := fmt.Sprintf("/api/v1/orders/%d/status", order.ID)
	s.call(t, http.MethodPut, statusPath, userToken, map[string]string{"status": "paid"}, http.StatusForbidden)
	s.call(t, http.MethodPut, statusPath, adminToken, map[string]string{"status": "paid"}, http.StatusOK)
	s.call(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID), userToken, nil, http.StatusBadRequest)
}
