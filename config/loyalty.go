package config

import "time"

// Loyalty 积分兑换的并发控制参数
type Loyalty struct {
	// LockTTL 单用户兑换锁的过期时间
	LockTTL time.Duration `json:"lock_ttl" yaml:"lock_ttl"`
	// LockWait 等待兑换锁的最长时间
	LockWait time.Duration `json:"lock_wait" yaml:"lock_wait"`
}

func (l *Loyalty) applyDefaults() {
	if l.LockTTL == 0 {
		l.LockTTL = 10 * time.Second
	}
	if l.LockWait == 0 {
		l.LockWait = 3 * time.Second
	}
}
