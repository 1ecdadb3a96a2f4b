package service

import (
	"Storefront/models"
	"Storefront/types"
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

// assertCartConsistent 增量维护的汇总必须等于按明细重算的结果
func assertCartConsistent(t *testing.T, env *testEnv, userID uint64) *models.Cart {
	t.Helper()
	ctx := context.Background()
	cart, err := env.cart.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	items, err := env.cart.CartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	subtotal, points := RecomputeTotals(items)
	if !cart.Subtotal.Equal(subtotal) {
		t.Fatalf("subtotal drift: stored %s, recomputed %s", cart.Subtotal, subtotal)
	}
	if !cart.Total.Equal(cart.Subtotal) {
		t.Fatalf("total %s != subtotal %s", cart.Total, cart.Subtotal)
	}
	if cart.EstimatedLoyaltyPoints != points {
		t.Fatalf("points drift: stored %d, recomputed %d", cart.EstimatedLoyaltyPoints, points)
	}
	return cart
}

func TestCart_Aggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "cart@example.com")
	shirt := env.createProduct(t, "19.99", 10, 20)
	mug := env.createProduct(t, "7.50", 10, 5)

	if _, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: shirt.ID, Quantity: 2}); err != nil {
		t.Fatalf("add shirt: %v", err)
	}
	assertCartConsistent(t, env, user.ID)

	mugItem, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: mug.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add mug: %v", err)
	}
	cart := assertCartConsistent(t, env, user.ID)
	if !cart.Subtotal.Equal(decimal.RequireFromString("47.48")) {
		t.Fatalf("expected subtotal 47.48, got %s", cart.Subtotal)
	}
	if cart.EstimatedLoyaltyPoints != 45 {
		t.Fatalf("expected 45 points, got %d", cart.EstimatedLoyaltyPoints)
	}

	// 同款再次加入合并为一行
	merged, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: shirt.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("merge shirt: %v", err)
	}
	if merged.Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", merged.Quantity)
	}
	cart = assertCartConsistent(t, env, user.ID)
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}

	qty := 4
	if _, err := env.cart.UpdateItem(ctx, user.ID, mugItem.ID, &types.UpdateCartItemRequest{Quantity: &qty}); err != nil {
		t.Fatalf("update mug: %v", err)
	}
	assertCartConsistent(t, env, user.ID)

	if err := env.cart.RemoveItem(ctx, user.ID, merged.ID); err != nil {
		t.Fatalf("remove shirt: %v", err)
	}
	cart = assertCartConsistent(t, env, user.ID)
	if !cart.Subtotal.Equal(decimal.NewFromInt(30)) || cart.EstimatedLoyaltyPoints != 20 {
		t.Fatalf("expected 30.00 / 20 points, got %s / %d", cart.Subtotal, cart.EstimatedLoyaltyPoints)
	}

	if err := env.cart.ClearCart(ctx, user.ID); err != nil {
		t.Fatalf("clear cart: %v", err)
	}
	cart = assertCartConsistent(t, env, user.ID)
	if len(cart.Items) != 0 || !cart.Subtotal.IsZero() {
		t.Fatalf("expected empty cart, got %d items, subtotal %s", len(cart.Items), cart.Subtotal)
	}
}

// 随机交错的增删改之后汇总始终与明细一致
func TestCart_RandomInterleaving(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "shuffle@example.com")
	products := []*models.Product{
		env.createProduct(t, "19.99", 10000, 20),
		env.createProduct(t, "7.50", 10000, 5),
		env.createProduct(t, "0.99", 10000, 0),
		env.createProduct(t, "123.45", 10000, 120),
	}

	rnd := rand.New(rand.NewSource(20261014))
	for step := 0; step < 120; step++ {
		cart := assertCartConsistent(t, env, user.ID)
		op := rnd.Intn(10)
		switch {
		case op < 5 || len(cart.Items) == 0:
			p := products[rnd.Intn(len(products))]
			if _, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: p.ID, Quantity: 1 + rnd.Intn(3)}); err != nil {
				t.Fatalf("step %d add: %v", step, err)
			}
		case op < 8:
			item := cart.Items[rnd.Intn(len(cart.Items))]
			qty := 1 + rnd.Intn(5)
			if _, err := env.cart.UpdateItem(ctx, user.ID, item.ID, &types.UpdateCartItemRequest{Quantity: &qty}); err != nil {
				t.Fatalf("step %d update: %v", step, err)
			}
		case op < 9:
			item := cart.Items[rnd.Intn(len(cart.Items))]
			if err := env.cart.RemoveItem(ctx, user.ID, item.ID); err != nil {
				t.Fatalf("step %d remove: %v", step, err)
			}
		default:
			if err := env.cart.ClearCart(ctx, user.ID); err != nil {
				t.Fatalf("step %d clear: %v", step, err)
			}
		}
	}
	assertCartConsistent(t, env, user.ID)
}

func TestCart_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "stock@example.com")
	product := env.createProduct(t, "10.00", 3, 1)

	item, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	before := assertCartConsistent(t, env, user.ID)

	// 合并后的数量超过库存
	if _, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: product.ID, Quantity: 2}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	qty := 4
	if _, err := env.cart.UpdateItem(ctx, user.ID, item.ID, &types.UpdateCartItemRequest{Quantity: &qty}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	after := assertCartConsistent(t, env, user.ID)
	if !after.Subtotal.Equal(before.Subtotal) || after.EstimatedLoyaltyPoints != before.EstimatedLoyaltyPoints {
		t.Fatalf("aggregates changed after rejected writes: %s -> %s", before.Subtotal, after.Subtotal)
	}
	if len(after.Items) != 1 || after.Items[0].Quantity != 2 {
		t.Fatalf("item changed after rejected writes: %+v", after.Items)
	}
}

func TestCart_Variants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "variant@example.com")
	product := env.createProduct(t, "25.00", 10, 0)
	if err := env.cart.ProductRepo.ReplaceVariants(ctx, product.ID, []string{"S", "M"}, nil); err != nil {
		t.Fatalf("replace variants: %v", err)
	}

	small, medium, large := "S", "M", "XL"
	if _, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: product.ID, Quantity: 1, Size: &large}); !errors.Is(err, ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}
	first, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: product.ID, Quantity: 1, Size: &small})
	if err != nil {
		t.Fatalf("add S: %v", err)
	}
	second, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: product.ID, Quantity: 2, Size: &medium})
	if err != nil {
		t.Fatalf("add M: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("different sizes must be separate lines")
	}

	// S 改成 M 后与已有明细合并
	merged, err := env.cart.UpdateItem(ctx, user.ID, first.ID, &types.UpdateCartItemRequest{Size: &medium})
	if err != nil {
		t.Fatalf("update size: %v", err)
	}
	if merged.ID != second.ID || merged.Quantity != 3 {
		t.Fatalf("expected merge into line %d with quantity 3, got %d / %d", second.ID, merged.ID, merged.Quantity)
	}
	cart := assertCartConsistent(t, env, user.ID)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
}

func TestCart_Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "rejected@example.com")
	product := env.createProduct(t, "5.00", 10, 0)

	if _, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := env.db.Model(product).Update("status", models.ProductStatusOff).Error; err != nil {
		t.Fatalf("off shelf: %v", err)
	}
	if _, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductOffShelf) {
		t.Fatalf("expected ErrProductOffShelf, got %v", err)
	}
	if err := env.cart.RemoveItem(ctx, user.ID, 9999); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	assertCartConsistent(t, env, user.ID)
}
