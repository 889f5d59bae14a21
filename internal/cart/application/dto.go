package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// UpdateCartCommand 调整购物车命令，Qty 为正加入、为负移除
type UpdateCartCommand struct {
	UserID uint
	ItemID uint
	Qty    int
}

// CartLineDTO 变更后的购物车行，Qty 为 0 表示该行已移除
type CartLineDTO struct {
	ItemID uint `json:"item_id"`
	Qty    int  `json:"qty"`
}

// CartItemDTO 购物车中的商品
type CartItemDTO struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Qty      int             `json:"qty"`
}

// CartDTO 购物车摘要
type CartDTO struct {
	Items []CartItemDTO   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func toCartDTO(cart *domain.Cart) *CartDTO {
	items := make([]CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemDTO{
			ID:       item.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Category: item.Category,
			Qty:      item.Qty,
		})
	}
	return &CartDTO{Items: items, Total: cart.Total()}
}
