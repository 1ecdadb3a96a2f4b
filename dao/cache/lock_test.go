package cache

import (
	"Storefront/config"
	"Storefront/models"
	"Storefront/pkg/log"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	return mr, rds
}

func newLock(rds *redis.Client, ttl, wait time.Duration) *RedeemLock {
	return NewRedeemLock(rds, &config.Config{Loyalty: &config.Loyalty{LockTTL: ttl, LockWait: wait}})
}

func TestRedeemLock(t *testing.T) {
	mr, rds := newRedis(t)
	lock := newLock(rds, time.Second, 100*time.Millisecond)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, 7)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !mr.Exists("storefront:loyalty:redeem:7") {
		t.Fatal("expected lock key")
	}

	if _, err := lock.Acquire(ctx, 7); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
	// 不同用户互不影响
	other, err := lock.Acquire(ctx, 8)
	if err != nil {
		t.Fatalf("acquire other user: %v", err)
	}
	other()

	release()
	if mr.Exists("storefront:loyalty:redeem:7") {
		t.Fatal("expected lock key removed")
	}
	again, err := lock.Acquire(ctx, 7)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again()
}

// 释放失败要留下 warn 日志，锁靠 TTL 自然过期
func TestRedeemLock_ReleaseFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := log.L
	log.L = zap.New(core)
	t.Cleanup(func() { log.L = prev })

	mr, rds := newRedis(t)
	lock := newLock(rds, time.Second, 100*time.Millisecond)
	release, err := lock.Acquire(context.Background(), 5)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	mr.SetError("LOADING redis is loading")
	release()
	mr.SetError("")

	if n := logs.FilterMessage("release redeem lock failed").Len(); n != 1 {
		t.Fatalf("expected 1 release warning, got %d", n)
	}
	if !mr.Exists("storefront:loyalty:redeem:5") {
		t.Fatal("lock key should survive a failed release")
	}
	mr.FastForward(2 * time.Second)
	if mr.Exists("storefront:loyalty:redeem:5") {
		t.Fatal("lock key should expire by ttl")
	}
}

// 锁过期后被别人拿走，旧的释放函数不能删掉新锁
func TestRedeemLock_StaleRelease(t *testing.T) {
	mr, rds := newRedis(t)
	lock := newLock(rds, time.Second, 100*time.Millisecond)
	ctx := context.Background()

	stale, err := lock.Acquire(ctx, 1)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	mr.FastForward(2 * time.Second)

	fresh, err := lock.Acquire(ctx, 1)
	if err != nil {
		t.Fatalf("acquire after expiry: %v", err)
	}
	stale()
	if !mr.Exists("storefront:loyalty:redeem:1") {
		t.Fatal("stale release removed the new holder's lock")
	}
	fresh()
	if mr.Exists("storefront:loyalty:redeem:1") {
		t.Fatal("expected lock key removed")
	}
}

func TestRedeemLock_ContextCancel(t *testing.T) {
	_, rds := newRedis(t)
	lock := newLock(rds, time.Second, time.Second)

	release, err := lock.Acquire(context.Background(), 3)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := lock.Acquire(ctx, 3); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestProductCache(t *testing.T) {
	_, rds := newRedis(t)
	c := NewProductCache(rds)
	ctx := context.Background()

	got, err := c.Get(ctx, 11)
	if err != nil || got != nil {
		t.Fatalf("expected miss, got %v, %v", got, err)
	}

	product := &models.Product{ID: 11, Name: "Tee", Price: decimal.RequireFromString("19.99"), Stock: 3}
	if err := c.Set(ctx, product); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err = c.Get(ctx, 11)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Tee" || !got.Price.Equal(product.Price) {
		t.Fatalf("unexpected cached product %+v", got)
	}

	if err := c.Del(ctx, 11); err != nil {
		t.Fatalf("del: %v", err)
	}
	if got, _ := c.Get(ctx, 11); got != nil {
		t.Fatal("expected miss after delete")
	}
}
