package domain

import (
	"context"
	"time"
)

// CheckoutRepository 结算所需的存储能力，所有写入在 WithTx 内完成
type CheckoutRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// LockCartLines 按商品 ID 顺序锁定用户购物车行及对应商品
	LockCartLines(ctx context.Context, userID uint) ([]CheckoutLine, error)
	SaveShippingDetail(ctx context.Context, detail *ShippingDetail) error
	SavePaymentDetail(ctx context.Context, detail *PaymentDetail) error
	// SaveOrder 写入订单头
	SaveOrder(ctx context.Context, order *Order) error
	// DecrementStock 库存充足时扣减，否则返回 InsufficientStockError
	DecrementStock(ctx context.Context, itemID uint, qty int) error
	SaveOrderLine(ctx context.Context, orderID uint, line *OrderLine) error
	// ClearCart 返回删除的购物车行数
	ClearCart(ctx context.Context, userID uint) (int64, error)
}

// OrderRepository 订单查询仓储
type OrderRepository interface {
	Get(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
}

// OrderCache 订单只读缓存，订单不可变
type OrderCache interface {
	Get(ctx context.Context, id uint) (*Order, error)
	Set(ctx context.Context, order *Order, ttl time.Duration) error
}
