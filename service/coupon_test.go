package service

import (
	"Storefront/models"
	"Storefront/types"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestApplyCoupon(t *testing.T) {
	now := time.Now()
	d := decimal.RequireFromString

	cases := []struct {
		name     string
		typ      string
		value    string
		amount   string
		discount string
		final    string
	}{
		{"fixed", models.DiscountFixed, "5", "20", "5", "15"},
		{"percentage", models.DiscountPercentage, "10", "100", "10", "90"},
		{"percentage rounds to cents", models.DiscountPercentage, "15", "19.99", "3", "16.99"},
		{"fixed clamped to amount", models.DiscountFixed, "50", "20", "20", "0"},
		{"zero amount", models.DiscountFixed, "5", "0", "0", "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			coupon := &models.Coupon{Type: c.typ, Value: d(c.value), ExpiresAt: now.Add(time.Hour)}
			res, err := applyCoupon(coupon, d(c.amount), now)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if !res.IsValid {
				t.Fatal("expected valid")
			}
			if !res.DiscountAmount.Equal(d(c.discount)) || !res.FinalAmount.Equal(d(c.final)) {
				t.Fatalf("expected %s/%s, got %s/%s", c.discount, c.final, res.DiscountAmount, res.FinalAmount)
			}
		})
	}
}

func TestApplyCoupon_Rejected(t *testing.T) {
	now := time.Now()
	amount := decimal.NewFromInt(20)

	used := &models.Coupon{Type: models.DiscountFixed, Value: decimal.NewFromInt(5), ExpiresAt: now.Add(time.Hour), IsUsed: true}
	if _, err := applyCoupon(used, amount, now); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}
	expired := &models.Coupon{Type: models.DiscountFixed, Value: decimal.NewFromInt(5), ExpiresAt: now.Add(-time.Minute)}
	if _, err := applyCoupon(expired, amount, now); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
	// 已使用优先于过期
	both := &models.Coupon{Type: models.DiscountFixed, Value: decimal.NewFromInt(5), ExpiresAt: now.Add(-time.Minute), IsUsed: true}
	if _, err := applyCoupon(both, amount, now); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}
	unknown := &models.Coupon{Type: "BOGO", Value: decimal.NewFromInt(5), ExpiresAt: now.Add(time.Hour)}
	if _, err := applyCoupon(unknown, amount, now); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("expected ErrInvalidDiscount, got %v", err)
	}
}

func TestCouponService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	anyone := Caller{UserID: 1}

	coupon, err := env.coupon.Create(ctx, &types.CreateCouponRequest{
		Code:      "SAVE5",
		Value:     decimal.NewFromInt(5),
		Type:      models.DiscountFixed,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.coupon.Create(ctx, &types.CreateCouponRequest{
		Code: "SAVE5", Value: decimal.NewFromInt(1), Type: models.DiscountFixed, ExpiresAt: time.Now(),
	}); !errors.Is(err, ErrCouponExists) {
		t.Fatalf("expected ErrCouponExists, got %v", err)
	}
	if _, err := env.coupon.Create(ctx, &types.CreateCouponRequest{
		Code: "BAD", Value: decimal.NewFromInt(120), Type: models.DiscountPercentage, ExpiresAt: time.Now(),
	}); err == nil {
		t.Fatal("expected percentage above 100 to be rejected")
	}

	res, err := env.coupon.Validate(ctx, anyone, coupon.Code, decimal.NewFromInt(20))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.FinalAmount.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected final 15, got %s", res.FinalAmount)
	}
	if _, err := env.coupon.Validate(ctx, anyone, "NOPE", decimal.NewFromInt(20)); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}

	marked, err := env.coupon.MarkUsed(ctx, anyone, coupon.Code)
	if err != nil {
		t.Fatalf("mark used: %v", err)
	}
	if !marked.IsUsed {
		t.Fatal("expected coupon marked used")
	}
	if _, err := env.coupon.MarkUsed(ctx, anyone, coupon.Code); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}
	if _, err := env.coupon.MarkUsed(ctx, anyone, "NOPE"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
	if _, err := env.coupon.Validate(ctx, anyone, coupon.Code, decimal.NewFromInt(20)); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}

	if err := env.coupon.Delete(ctx, coupon.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.coupon.Delete(ctx, coupon.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestCouponService_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")

	coupon, err := env.coupon.Create(ctx, &types.CreateCouponRequest{
		Code:      "OWNED10",
		Value:     decimal.NewFromInt(10),
		Type:      models.DiscountFixed,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		UserID:    &owner.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	amount := decimal.NewFromInt(50)
	if _, err := env.coupon.Validate(ctx, Caller{UserID: other.ID}, coupon.Code, amount); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound for other user, got %v", err)
	}
	if _, err := env.coupon.MarkUsed(ctx, Caller{UserID: other.ID}, coupon.Code); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound for other user, got %v", err)
	}
	if n := env.count(t, &models.Coupon{}, "code = ? AND is_used = ?", coupon.Code, true); n != 0 {
		t.Fatal("coupon burned by another user")
	}

	if _, err := env.coupon.Validate(ctx, Caller{UserID: other.ID, IsAdmin: true}, coupon.Code, amount); err != nil {
		t.Fatalf("admin validate: %v", err)
	}
	if _, err := env.coupon.Validate(ctx, Caller{UserID: owner.ID}, coupon.Code, amount); err != nil {
		t.Fatalf("owner validate: %v", err)
	}
	marked, err := env.coupon.MarkUsed(ctx, Caller{UserID: owner.ID}, coupon.Code)
	if err != nil {
		t.Fatalf("owner mark used: %v", err)
	}
	if !marked.IsUsed {
		t.Fatal("expected coupon marked used")
	}
}
