// Package redis 订单只读缓存
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

type orderCache struct {
	cache  cache.Cache
	prefix string
}

// NewOrderCache 创建订单缓存
func NewOrderCache(c cache.Cache) domain.OrderCache {
	return &orderCache{cache: c, prefix: "order:"}
}

func (r *orderCache) key(id uint) string {
	return fmt.Sprintf("%s%d", r.prefix, id)
}

// Get 未命中时返回 nil, nil
func (r *orderCache) Get(ctx context.Context, id uint) (*domain.Order, error) {
	data, ok, err := r.cache.Get(ctx, r.key(id))
	if err != nil || !ok {
		return nil, err
	}
	var order domain.Order
	if err := json.Unmarshal([]byte(data), &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return &order, nil
}

func (r *orderCache) Set(ctx context.Context, order *domain.Order, ttl time.Duration) error {
	if order == nil {
		return nil
	}
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	return r.cache.Set(ctx, r.key(order.ID), data, ttl)
}
