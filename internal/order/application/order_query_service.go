package application

import (
	"context"
	"time"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/logger"
)

const orderCacheTTL = 15 * time.Minute

// OrderQueryService 订单查询服务
type OrderQueryService struct {
	repo  domain.OrderRepository
	cache domain.OrderCache
}

// NewOrderQueryService 创建订单查询服务，cache 可为 nil
func NewOrderQueryService(repo domain.OrderRepository, cache domain.OrderCache) *OrderQueryService {
	return &OrderQueryService{repo: repo, cache: cache}
}

// ListUserOrders 列出用户的全部订单
func (s *OrderQueryService) ListUserOrders(ctx context.Context, userID uint) ([]*OrderSummary, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errorsx.Store("list orders", err)
	}
	summaries := make([]*OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, toOrderSummary(o))
	}
	return summaries, nil
}

// GetOrder 获取用户的某个订单，不属于该用户时视为不存在
func (s *OrderQueryService) GetOrder(ctx context.Context, userID, orderID uint) (*OrderSummary, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderSummary(order), nil
}

// load 先读缓存，缓存故障只记录日志
func (s *OrderQueryService) load(ctx context.Context, orderID uint) (*domain.Order, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, orderID)
		if err != nil {
			logger.Warn(ctx, "order cache read failed", "order_id", orderID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		if errorsx.KindOf(err) != errorsx.KindUnknown {
			return nil, err
		}
		return nil, errorsx.Store("get order", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, order, orderCacheTTL); err != nil {
			logger.Warn(ctx, "order cache write failed", "order_id", orderID, "error", err)
		}
	}
	return order, nil
}
