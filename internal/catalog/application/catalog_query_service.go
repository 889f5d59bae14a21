package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo domain.ItemRepository
}

// NewCatalogQueryService 创建商品目录查询服务实例
func NewCatalogQueryService(repo domain.ItemRepository) *CatalogQueryService {
	return &CatalogQueryService{repo: repo}
}

// GetItem 根据 ID 获取商品
func (s *CatalogQueryService) GetItem(ctx context.Context, id uint) (*ItemDTO, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get item")
	}
	dto := toItemDTO(item)
	return &dto, nil
}

// ListItems 分页列出商品
func (s *CatalogQueryService) ListItems(ctx context.Context, page, pageSize int) (*ItemPage, error) {
	p := utils.NewPagination(page, pageSize)
	items, total, err := s.repo.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return nil, storeErr(err, "list items")
	}
	p.SetTotal(total)
	return &ItemPage{Items: toItemDTOs(items), Pagination: p}, nil
}

// ListByCategory 列出分类下的商品
func (s *CatalogQueryService) ListByCategory(ctx context.Context, category string) ([]ItemDTO, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByCategory(ctx, c)
	if err != nil {
		return nil, storeErr(err, "list items by category")
	}
	return toItemDTOs(items), nil
}

// ListRatings 列出商品评分，商品不存在时返回 NotFound
func (s *CatalogQueryService) ListRatings(ctx context.Context, itemID uint) ([]RatingDTO, error) {
	if _, err := s.repo.Get(ctx, itemID); err != nil {
		return nil, storeErr(err, "get item")
	}
	ratings, err := s.repo.ListRatings(ctx, itemID)
	if err != nil {
		return nil, storeErr(err, "list ratings")
	}
	dtos := make([]RatingDTO, 0, len(ratings))
	for _, r := range ratings {
		dtos = append(dtos, RatingDTO{ItemID: r.ItemID, Rating: r.Value, CreatedAt: r.CreatedAt})
	}
	return dtos, nil
}
