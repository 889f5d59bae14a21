package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartQueryService 购物车查询服务
type CartQueryService struct {
	repo domain.CartRepository
}

// NewCartQueryService 创建购物车查询服务
func NewCartQueryService(repo domain.CartRepository) *CartQueryService {
	return &CartQueryService{repo: repo}
}

// GetCart 返回购物车内容与按当前价格计算的合计
func (s *CartQueryService) GetCart(ctx context.Context, userID uint) (*CartDTO, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "list cart")
	}
	return toCartDTO(&domain.Cart{UserID: userID, Items: items}), nil
}
