package cache

import (
	"Storefront/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 商品详情缓存时间
const productExpireAt = 10 * time.Minute

type ProductCache struct {
	redis *redis.Client
}

func NewProductCache(rds *redis.Client) *ProductCache {
	return &ProductCache{redis: rds}
}

// Get 未命中时返回 nil, nil
func (p *ProductCache) Get(ctx context.Context, id uint64) (*models.Product, error) {
	val, err := p.redis.Get(ctx, p.name(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(val, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *ProductCache) Set(ctx context.Context, product *models.Product) error {
	val, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return p.redis.Set(ctx, p.name(product.ID), val, productExpireAt).Err()
}

func (p *ProductCache) Del(ctx context.Context, id uint64) error {
	return p.redis.Del(ctx, p.name(id)).Err()
}

func (p *ProductCache) name(id uint64) string {
	return fmt.Sprintf("storefront:product:%d", id)
}
