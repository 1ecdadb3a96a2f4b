//go:build integration

package service

import (
	"Storefront/config"
	"Storefront/models"
	"Storefront/pkg/database"
	"Storefront/types"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newPostgresEnv 真实数据库上验证行锁，运行: go test -tags integration ./service/...
func newPostgresEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "storefront",
				"POSTGRES_PASSWORD": "storefront",
				"POSTGRES_DB":       "storefront",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	db, cleanup, err := database.NewDB(&config.Database{
		Driver:       config.DriverPostgres,
		Host:         host,
		Port:         port.Int(),
		UserName:     "storefront",
		Password:     "storefront",
		Database:     "storefront",
		MaxOpenConns: 20,
	})
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(cleanup)
	return buildTestEnv(t, db)
}

func TestIntegration_ConcurrentRedeem(t *testing.T) {
	env := newPostgresEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "pg-redeem@example.com")
	if _, err := env.loyalty.Enroll(ctx, user.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := env.loyalty.CreateTransaction(ctx, user.ID, models.TxTypeEarned, 450, "", false); err != nil {
		t.Fatalf("earn: %v", err)
	}
	reward := env.createReward(t, 200, 30)

	var (
		wg      conc.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 10; i++ {
		wg.Go(func() {
			_, err := env.loyalty.Redeem(ctx, user.ID, reward.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrInsufficientPoints), errors.Is(err, ErrRedeemBusy):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	wg.Wait()

	if success != 2 {
		t.Fatalf("expected 2 redemptions, got %d", success)
	}
	if got := env.balance(t, user.ID); got != 50 {
		t.Fatalf("expected balance 50, got %d", got)
	}
}

// 多个用户同时抢最后几件库存，不能超卖
func TestIntegration_CheckoutNoOversell(t *testing.T) {
	env := newPostgresEnv(t)
	ctx := context.Background()
	product := env.createProduct(t, "9.90", 3, 0)

	const buyers = 8
	users := make([]*models.User, 0, buyers)
	for i := 0; i < buyers; i++ {
		user := env.createUser(t, fmt.Sprintf("buyer%d@example.com", i))
		if _, err := env.cart.AddItem(ctx, user.ID, &types.AddCartItemRequest{ProductID: product.ID, Quantity: 1}); err != nil {
			t.Fatalf("add: %v", err)
		}
		users = append(users, user)
	}

	var (
		wg      conc.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, user := range users {
		wg.Go(func() {
			_, err := env.order.Checkout(ctx, user.ID, &types.CheckoutRequest{ShippingAddress: testAddress()})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrInsufficientStock):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	wg.Wait()

	if success != 3 {
		t.Fatalf("expected 3 orders, got %d", success)
	}
	var stored models.Product
	if err := env.db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", stored.Stock)
	}
}
