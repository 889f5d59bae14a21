package application

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/order/domain"
)

// CheckoutCommand 结算命令
type CheckoutCommand struct {
	UserID     uint
	Address    string
	CardNumber string
	CVV        string
}

// OrderDTO 订单头
type OrderDTO struct {
	ID               uint            `json:"id"`
	Total            decimal.Decimal `json:"total"`
	UserID           uint            `json:"user_id"`
	ShippingDetailID uint            `json:"shipping_detail_id,omitempty"`
	PaymentDetailID  uint            `json:"payment_detail_id,omitempty"`
	OrderDate        time.Time       `json:"order_date"`
}

// OrderItemDTO 订单明细
type OrderItemDTO struct {
	ID       *uint           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Qty      int             `json:"qty"`
}

// ShippingDTO 收货信息
type ShippingDTO struct {
	Address string `json:"address"`
}

// PaymentDTO 支付信息，仅掩码卡号
type PaymentDTO struct {
	CardNumber string `json:"card_number"`
	CardLast4  string `json:"card_last4"`
}

// OrderSummary 订单摘要
type OrderSummary struct {
	Order    OrderDTO       `json:"order"`
	Items    []OrderItemDTO `json:"items"`
	Shipping *ShippingDTO   `json:"shipping_detail,omitempty"`
	Payment  *PaymentDTO    `json:"payment_detail,omitempty"`
}

func toOrderSummary(o *domain.Order) *OrderSummary {
	s := &OrderSummary{
		Order: OrderDTO{
			ID:        o.ID,
			Total:     o.Total,
			UserID:    o.UserID,
			OrderDate: o.CreatedAt,
		},
		Items: make([]OrderItemDTO, 0, len(o.Lines)),
	}
	if o.Shipping != nil {
		s.Order.ShippingDetailID = o.Shipping.ID
		s.Shipping = &ShippingDTO{Address: o.Shipping.Address}
	}
	if o.Payment != nil {
		s.Order.PaymentDetailID = o.Payment.ID
		s.Payment = &PaymentDTO{CardNumber: o.Payment.MaskedNumber, CardLast4: o.Payment.CardLast4}
	}
	for _, l := range o.Lines {
		s.Items = append(s.Items, OrderItemDTO{
			ID:       l.ItemID,
			Name:     l.ItemName,
			Price:    l.UnitPrice,
			Category: l.Category,
			Qty:      l.Qty,
		})
	}
	return s
}
