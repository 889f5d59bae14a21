package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/pkg/errorsx"
)

const maxAddressLen = 500

var (
	ErrEmptyCart     = errorsx.New(errorsx.KindEmptyCart, "EMPTY_CART", "Your cart is empty.")
	ErrCartChanged   = errorsx.New(errorsx.KindConflict, "CART_CHANGED", "Your cart changed during checkout, please retry.")
	ErrOrderNotFound = errorsx.NotFound("order not found")
)

// ShippingDetail 收货信息，随订单创建后不可变
type ShippingDetail struct {
	ID      uint
	Address string
}

// NewShippingDetail 校验收货地址
func NewShippingDetail(address string) (*ShippingDetail, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errorsx.Validation("shipping address is required")
	}
	if utf8.RuneCountInString(address) > maxAddressLen {
		return nil, errorsx.Validationf("shipping address must be at most %d characters", maxAddressLen)
	}
	return &ShippingDetail{Address: address}, nil
}

// PaymentDetail 支付信息，只保存掩码卡号，CVV 不落库
type PaymentDetail struct {
	ID           uint
	CardLast4    string
	MaskedNumber string
}

// NewPaymentDetail 校验卡号与 CVV，返回掩码后的支付信息
func NewPaymentDetail(cardNumber, cvv string) (*PaymentDetail, error) {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(cardNumber)
	if len(digits) < 12 || len(digits) > 19 || !allDigits(digits) {
		return nil, errorsx.Validation("card number must be 12 to 19 digits")
	}
	if len(cvv) < 3 || len(cvv) > 4 || !allDigits(cvv) {
		return nil, errorsx.Validation("cvv must be 3 or 4 digits")
	}
	last4 := digits[len(digits)-4:]
	return &PaymentDetail{
		CardLast4:    last4,
		MaskedNumber: strings.Repeat("*", len(digits)-4) + last4,
	}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// CheckoutLine 结算时读取并锁定的购物车行及商品当前信息
type CheckoutLine struct {
	ItemID   uint
	Name     string
	Price    decimal.Decimal
	Category string
	Qty      int
}

// OrderLine 订单明细快照；商品删除后 ItemID 为空
type OrderLine struct {
	ItemID    *uint
	ItemName  string
	UnitPrice decimal.Decimal
	Category  string
	Qty       int
}

// Subtotal 单价乘数量
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Order 订单，合计在创建时确定且不再变化
type Order struct {
	ID        uint
	UserID    uint
	Total     decimal.Decimal
	Shipping  *ShippingDetail
	Payment   *PaymentDetail
	Lines     []OrderLine
	CreatedAt time.Time
}

// NewOrder 由结算行生成订单，合计为各行单价乘数量之和
func NewOrder(userID uint, shipping *ShippingDetail, payment *PaymentDetail, lines []CheckoutLine) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	order := &Order{
		UserID:   userID,
		Total:    decimal.Zero,
		Shipping: shipping,
		Payment:  payment,
		Lines:    make([]OrderLine, 0, len(lines)),
	}
	for _, l := range lines {
		itemID := l.ItemID
		line := OrderLine{
			ItemID:    &itemID,
			ItemName:  l.Name,
			UnitPrice: l.Price,
			Category:  l.Category,
			Qty:       l.Qty,
		}
		order.Lines = append(order.Lines, line)
		order.Total = order.Total.Add(line.Subtotal())
	}
	return order, nil
}
