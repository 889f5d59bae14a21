package domain

import (
	"context"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
)

var (
	ErrLineNotFound = errorsx.NotFound("Item not found in your cart.")
	ErrZeroQuantity = errorsx.Validation("Quantity can't be 0.")
)

// CartItem 购物车行与商品当前信息的联合视图
type CartItem struct {
	ItemID   uint
	Name     string
	Price    decimal.Decimal
	Category string
	Qty      int
}

// Subtotal 单价乘数量
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Cart 用户购物车
type Cart struct {
	UserID uint
	Items  []CartItem
}

// Total 按当前商品价格计算的合计
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartRepository 购物车仓储，购物车行数量始终大于 0
type CartRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// AddQty 不存在时创建，存在时累加，返回累加后的数量
	AddQty(ctx context.Context, userID, itemID uint, qty int) (int, error)
	// DecreaseQty 扣减数量，降到 0 及以下时删除该行，返回剩余数量
	DecreaseQty(ctx context.Context, userID, itemID uint, qty int) (int, error)
	// Clear 清空购物车，返回删除的行数
	Clear(ctx context.Context, userID uint) (int64, error)
	ListItems(ctx context.Context, userID uint) ([]CartItem, error)
}

// ItemReader 读取商品
type ItemReader interface {
	Get(ctx context.Context, id uint) (*catalogdomain.Item, error)
}
