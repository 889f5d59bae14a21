package domain

import "context"

// ItemRepository 商品仓储接口
type ItemRepository interface {
	// WithTx 在同一事务中执行 fn
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// Save 新增商品，名称重复返回 ErrItemNameTaken
	Save(ctx context.Context, item *Item) error
	// Get 查询商品，不存在返回 ErrItemNotFound
	Get(ctx context.Context, id uint) (*Item, error)
	// ExistsByName 名称是否已被占用
	ExistsByName(ctx context.Context, name string) (bool, error)
	// List 分页列出商品
	List(ctx context.Context, offset, limit int) ([]*Item, int64, error)
	// ListByCategory 列出分类下的商品
	ListByCategory(ctx context.Context, category Category) ([]*Item, error)
	// Delete 删除商品及购物车引用，订单行的商品引用置空
	Delete(ctx context.Context, id uint) error
	// AdjustStock 原子调整库存，结果为负时返回 *InsufficientStockError
	AdjustStock(ctx context.Context, id uint, delta int) (*Item, error)
	// SaveRating 追加评分
	SaveRating(ctx context.Context, rating *Rating) error
	// ListRatings 列出商品评分
	ListRatings(ctx context.Context, itemID uint) ([]*Rating, error)
}
