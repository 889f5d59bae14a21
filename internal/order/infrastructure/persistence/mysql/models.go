package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/order/domain"
	usermysql "github.com/wyfcoding/storefront/internal/user/infrastructure/persistence/mysql"
)

// ShippingDetailModel 收货信息表映射
type ShippingDetailModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Address   string    `gorm:"column:address;type:varchar(500);not null"`
}

func (ShippingDetailModel) TableName() string { return "shipping_details" }

// PaymentDetailModel 支付信息表映射
type PaymentDetailModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	CardLast4    string    `gorm:"column:card_last4;type:char(4);not null"`
	MaskedNumber string    `gorm:"column:masked_number;type:varchar(19);not null"`
}

func (PaymentDetailModel) TableName() string { return "payment_details" }

// OrderModel 订单表映射
type OrderModel struct {
	ID               uint                 `gorm:"primaryKey;autoIncrement"`
	CreatedAt        time.Time            `gorm:"column:created_at;index"`
	UserID           uint                 `gorm:"column:user_id;index;not null"`
	Total            decimal.Decimal      `gorm:"column:total;type:decimal(14,2);not null"`
	ShippingDetailID *uint                `gorm:"column:shipping_detail_id"`
	PaymentDetailID  *uint                `gorm:"column:payment_detail_id"`
	User             *usermysql.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ShippingDetail   *ShippingDetailModel `gorm:"foreignKey:ShippingDetailID;constraint:OnDelete:SET NULL"`
	PaymentDetail    *PaymentDetailModel  `gorm:"foreignKey:PaymentDetailID;constraint:OnDelete:SET NULL"`
	Lines            []OrderLineModel     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderLineModel 订单明细表映射
type OrderLineModel struct {
	ID        uint                    `gorm:"primaryKey;autoIncrement"`
	OrderID   uint                    `gorm:"column:order_id;index;not null"`
	ItemID    *uint                   `gorm:"column:item_id;index"`
	ItemName  string                  `gorm:"column:item_name;type:varchar(255);not null"`
	UnitPrice decimal.Decimal         `gorm:"column:unit_price;type:decimal(12,2);not null"`
	Category  string                  `gorm:"column:category;type:varchar(32);not null"`
	Qty       int                     `gorm:"column:qty;not null;check:chk_order_lines_qty,qty > 0"`
	Item      *catalogmysql.ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL"`
}

func (OrderLineModel) TableName() string { return "order_lines" }

// Models 本上下文拥有的表，按依赖顺序排列
func Models() []any {
	return []any{&ShippingDetailModel{}, &PaymentDetailModel{}, &OrderModel{}, &OrderLineModel{}}
}

func toOrder(m *OrderModel) *domain.Order {
	order := &domain.Order{
		ID:        m.ID,
		UserID:    m.UserID,
		Total:     m.Total,
		CreatedAt: m.CreatedAt,
		Lines:     make([]domain.OrderLine, 0, len(m.Lines)),
	}
	if m.ShippingDetail != nil {
		order.Shipping = &domain.ShippingDetail{ID: m.ShippingDetail.ID, Address: m.ShippingDetail.Address}
	}
	if m.PaymentDetail != nil {
		order.Payment = &domain.PaymentDetail{
			ID:           m.PaymentDetail.ID,
			CardLast4:    m.PaymentDetail.CardLast4,
			MaskedNumber: m.PaymentDetail.MaskedNumber,
		}
	}
	for _, l := range m.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			UnitPrice: l.UnitPrice,
			Category:  l.Category,
			Qty:       l.Qty,
		})
	}
	return order
}
