package cache

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLockTimeout 等待超过 lock_wait 仍未拿到锁
var ErrLockTimeout = errors.New("cache: lock wait timeout")

const lockRetryInterval = 20 * time.Millisecond

// 仅当 value 与自己的 token 一致时才删除，避免误删他人续上的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedeemLock 基于 SET NX PX 的单用户兑换锁
type RedeemLock struct {
	redis *redis.Client
	ttl   time.Duration
	wait  time.Duration
}

func NewRedeemLock(rds *redis.Client, conf *config.Config) *RedeemLock {
	return &RedeemLock{
		redis: rds,
		ttl:   conf.Loyalty.LockTTL,
		wait:  conf.Loyalty.LockWait,
	}
}

// Acquire 拿到锁后返回释放函数；等待期间 ctx 取消则直接返回 ctx 错误
func (l *RedeemLock) Acquire(ctx context.Context, userID uint64) (func(), error) {
	key := l.name(userID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// 业务 ctx 可能已取消，释放使用独立 ctx
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := unlockScript.Run(releaseCtx, l.redis, []string{key}, token).Err(); err != nil {
					log.L.Warn("release redeem lock failed", zap.Uint64("user_id", userID), zap.Error(err))
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

func (l *RedeemLock) name(userID uint64) string {
	return fmt.Sprintf("storefront:loyalty:redeem:%d", userID)
}
