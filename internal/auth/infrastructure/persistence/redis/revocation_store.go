// Package redis 令牌吊销的 Redis 存储
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/auth/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

type revocationStore struct {
	cache cache.Cache
}

// NewRevocationStore 创建吊销存储
func NewRevocationStore(c cache.Cache) domain.RevocationStore {
	return &revocationStore{cache: c}
}

// TokenKey 单个令牌的吊销标记
func TokenKey(tokenID string) string {
	return "invalid_access_token:" + tokenID
}

// WatermarkKey 用户令牌最早签发时间
func WatermarkKey(userID uint) string {
	return fmt.Sprintf("user:%d:access_token_min_issue_date", userID)
}

func (s *revocationStore) Lookup(ctx context.Context, tokenID string, userID uint) (*domain.RevocationState, error) {
	tk, wk := TokenKey(tokenID), WatermarkKey(userID)
	vals, err := s.cache.GetMulti(ctx, tk, wk)
	if err != nil {
		return nil, err
	}

	state := &domain.RevocationState{}
	_, state.Revoked = vals[tk]
	if raw, ok := vals[wk]; ok {
		wm, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse watermark %q: %w", raw, err)
		}
		state.Watermark = wm
	}
	return state, nil
}

func (s *revocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, TokenKey(tokenID), 1, ttl)
}

func (s *revocationStore) SetWatermark(ctx context.Context, userID uint, unixMilli int64, ttl time.Duration) error {
	return s.cache.Set(ctx, WatermarkKey(userID), unixMilli, ttl)
}
