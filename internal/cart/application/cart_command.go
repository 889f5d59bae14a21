package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/mq"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// CartCommandService 购物车命令服务
type CartCommandService struct {
	repo      domain.CartRepository
	items     domain.ItemReader
	publisher domain.EventPublisher
}

// NewCartCommandService 创建购物车命令服务
func NewCartCommandService(repo domain.CartRepository, items domain.ItemReader, publisher domain.EventPublisher) *CartCommandService {
	return &CartCommandService{repo: repo, items: items, publisher: publisher}
}

// UpdateQty 加入或移除商品；加入时不检查库存，库存在结算时校验
func (s *CartCommandService) UpdateQty(ctx context.Context, cmd UpdateCartCommand) (*CartLineDTO, error) {
	if _, err := s.items.Get(ctx, cmd.ItemID); err != nil {
		return nil, storeErr(err, "get item")
	}
	if cmd.Qty == 0 {
		return nil, domain.ErrZeroQuantity
	}
	if err := utils.CheckQty(cmd.Qty); err != nil {
		return nil, err
	}

	var (
		qty int
		err error
	)
	if cmd.Qty > 0 {
		qty, err = s.repo.AddQty(ctx, cmd.UserID, cmd.ItemID, cmd.Qty)
	} else {
		qty, err = s.repo.DecreaseQty(ctx, cmd.UserID, cmd.ItemID, -cmd.Qty)
	}
	if err != nil {
		return nil, storeErr(err, "update cart")
	}

	mq.PublishAsync(ctx, s.publisher, domain.CartUpdatedTopic, key(cmd.UserID), domain.CartUpdatedEvent{
		UserID:    cmd.UserID,
		ItemID:    cmd.ItemID,
		Delta:     cmd.Qty,
		Qty:       qty,
		Timestamp: time.Now(),
	})
	return &CartLineDTO{ItemID: cmd.ItemID, Qty: qty}, nil
}

// ClearCart 清空购物车
func (s *CartCommandService) ClearCart(ctx context.Context, userID uint) error {
	n, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return storeErr(err, "clear cart")
	}
	mq.PublishAsync(ctx, s.publisher, domain.CartClearedTopic, key(userID), domain.CartClearedEvent{
		UserID:    userID,
		Lines:     n,
		Timestamp: time.Now(),
	})
	return nil
}

func storeErr(err error, op string) error {
	if errorsx.KindOf(err) != errorsx.KindUnknown {
		return err
	}
	return errorsx.Store(op, err)
}

func key(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
