// Package mysql 订单与结算的 gorm 仓储实现
package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository 同时实现结算写入与订单查询
type OrderRepository struct {
	db *db.DB
}

var (
	_ domain.CheckoutRepository = (*OrderRepository)(nil)
	_ domain.OrderRepository    = (*OrderRepository)(nil)
)

// NewOrderRepository 创建订单仓储
func NewOrderRepository(d *db.DB) *OrderRepository {
	return &OrderRepository{db: d}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.Conn(ctx)
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, fn)
}

type checkoutRow struct {
	ItemID   uint
	Name     string
	Price    decimal.Decimal
	Category string
	Qty      int
}

// LockCartLines 读取购物车行与商品当前价格，SELECT ... FOR UPDATE 按商品 ID 加锁避免死锁
func (r *OrderRepository) LockCartLines(ctx context.Context, userID uint) ([]domain.CheckoutLine, error) {
	var rows []checkoutRow
	err := r.getDB(ctx).Table("cart_lines").
		Select("items.id AS item_id, items.name, items.price, items.category, cart_lines.qty").
		Joins("JOIN items ON items.id = cart_lines.item_id").
		Where("cart_lines.user_id = ?", userID).
		Order("items.id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]domain.CheckoutLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CheckoutLine(row))
	}
	return lines, nil
}

func (r *OrderRepository) SaveShippingDetail(ctx context.Context, detail *domain.ShippingDetail) error {
	model := &ShippingDetailModel{Address: detail.Address}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	detail.ID = model.ID
	return nil
}

func (r *OrderRepository) SavePaymentDetail(ctx context.Context, detail *domain.PaymentDetail) error {
	model := &PaymentDetailModel{CardLast4: detail.CardLast4, MaskedNumber: detail.MaskedNumber}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	detail.ID = model.ID
	return nil
}

func (r *OrderRepository) SaveOrder(ctx context.Context, order *domain.Order) error {
	model := &OrderModel{
		UserID: order.UserID,
		Total:  order.Total,
	}
	if order.Shipping != nil {
		model.ShippingDetailID = &order.Shipping.ID
	}
	if order.Payment != nil {
		model.PaymentDetailID = &order.Payment.ID
	}
	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}
	order.ID = model.ID
	order.CreatedAt = model.CreatedAt
	return nil
}

// DecrementStock 条件更新保证库存不为负；未更新时重新读取库存用于错误描述
func (r *OrderRepository) DecrementStock(ctx context.Context, itemID uint, qty int) error {
	res := r.getDB(ctx).Model(&catalogmysql.ItemModel{}).
		Where("id = ? AND qty >= ?", itemID, qty).
		Update("qty", gorm.Expr("qty - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var item catalogmysql.ItemModel
	if err := r.getDB(ctx).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalogdomain.ErrItemNotFound
		}
		return err
	}
	return &catalogdomain.InsufficientStockError{ItemID: item.ID, ItemName: item.Name, Available: item.Qty}
}

func (r *OrderRepository) SaveOrderLine(ctx context.Context, orderID uint, line *domain.OrderLine) error {
	model := &OrderLineModel{
		OrderID:   orderID,
		ItemID:    line.ItemID,
		ItemName:  line.ItemName,
		UnitPrice: line.UnitPrice,
		Category:  line.Category,
		Qty:       line.Qty,
	}
	return r.getDB(ctx).Omit(clause.Associations).Create(model).Error
}

func (r *OrderRepository) ClearCart(ctx context.Context, userID uint) (int64, error) {
	res := r.getDB(ctx).Exec("DELETE FROM cart_lines WHERE user_id = ?", userID)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.getDB(ctx).
		Preload("ShippingDetail").
		Preload("PaymentDetail").
		Preload("Lines", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") })
}

func (r *OrderRepository) Get(ctx context.Context, id uint) (*domain.Order, error) {
	var model OrderModel
	if err := r.preloaded(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return toOrder(&model), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error) {
	var models []OrderModel
	if err := r.preloaded(ctx).Where("user_id = ?", userID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(models))
	for i := range models {
		orders = append(orders, toOrder(&models[i]))
	}
	return orders, nil
}
