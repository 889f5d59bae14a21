package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/mq"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(repo domain.ItemRepository, publisher domain.EventPublisher) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		publisher: publisher,
	}
}

// RegisterItem 上架商品，名称唯一
func (s *CatalogCommandService) RegisterItem(ctx context.Context, cmd RegisterItemCommand) (*ItemDTO, error) {
	category, err := domain.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}
	item, err := domain.NewItem(cmd.Name, cmd.Price, category, cmd.Qty)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		taken, err := s.repo.ExistsByName(txCtx, item.Name)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrItemNameTaken
		}
		return s.repo.Save(txCtx, item)
	})
	if err != nil {
		return nil, storeErr(err, "register item")
	}

	logger.Info(ctx, "item registered", "item_id", item.ID, "name", item.Name)
	mq.PublishAsync(ctx, s.publisher, domain.ItemRegisteredTopic, key(item.ID), domain.ItemRegisteredEvent{
		ItemID:    item.ID,
		Name:      item.Name,
		Price:     item.Price.StringFixed(2),
		Category:  string(item.Category),
		Qty:       item.Qty,
		Timestamp: time.Now(),
	})

	dto := toItemDTO(item)
	return &dto, nil
}

// DeleteItem 删除商品
func (s *CatalogCommandService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr(err, "delete item")
	}

	logger.Info(ctx, "item deleted", "item_id", id)
	mq.PublishAsync(ctx, s.publisher, domain.ItemDeletedTopic, key(id), domain.ItemDeletedEvent{
		ItemID:    id,
		Timestamp: time.Now(),
	})
	return nil
}

// AdjustStock 调整库存，结果为负时拒绝
func (s *CatalogCommandService) AdjustStock(ctx context.Context, cmd AdjustStockCommand) (*ItemDTO, error) {
	if cmd.Delta == 0 {
		return nil, domain.ErrZeroQuantity
	}
	if err := utils.CheckQty(cmd.Delta); err != nil {
		return nil, err
	}

	item, err := s.repo.AdjustStock(ctx, cmd.ItemID, cmd.Delta)
	if err != nil {
		return nil, storeErr(err, "adjust stock")
	}

	mq.PublishAsync(ctx, s.publisher, domain.ItemStockChangedTopic, key(item.ID), domain.ItemStockChangedEvent{
		ItemID:    item.ID,
		Delta:     cmd.Delta,
		NewQty:    item.Qty,
		Timestamp: time.Now(),
	})

	dto := toItemDTO(item)
	return &dto, nil
}

// RateItem 为已存在的商品追加评分
func (s *CatalogCommandService) RateItem(ctx context.Context, cmd RateItemCommand) (*RatingDTO, error) {
	rating, err := domain.NewRating(cmd.ItemID, cmd.Rating)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.Get(txCtx, cmd.ItemID); err != nil {
			return err
		}
		return s.repo.SaveRating(txCtx, rating)
	})
	if err != nil {
		return nil, storeErr(err, "rate item")
	}

	mq.PublishAsync(ctx, s.publisher, domain.ItemRatedTopic, key(rating.ItemID), domain.ItemRatedEvent{
		ItemID:    rating.ItemID,
		Rating:    rating.Value,
		Timestamp: time.Now(),
	})

	return &RatingDTO{ItemID: rating.ItemID, Rating: rating.Value, CreatedAt: rating.CreatedAt}, nil
}

// storeErr 保留已分类的业务错误，其余包装为存储错误
func storeErr(err error, op string) error {
	if errorsx.KindOf(err) != errorsx.KindUnknown {
		return err
	}
	return errorsx.Store(op, err)
}

func key(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
