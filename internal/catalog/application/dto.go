package application

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// RegisterItemCommand 上架商品命令
type RegisterItemCommand struct {
	Name     string
	Price    decimal.Decimal
	Category string
	Qty      int
}

// AdjustStockCommand 调整库存命令，Delta 为正补货、为负扣减
type AdjustStockCommand struct {
	ItemID uint
	Delta  int
}

// RateItemCommand 商品评分命令
type RateItemCommand struct {
	ItemID uint
	Rating int
}

// ItemDTO 商品
type ItemDTO struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Qty      int             `json:"qty"`
}

// ItemPage 商品分页结果
type ItemPage struct {
	Items      []ItemDTO         `json:"items"`
	Pagination *utils.Pagination `json:"pagination"`
}

// RatingDTO 评分
type RatingDTO struct {
	ItemID    uint      `json:"item_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func toItemDTO(item *domain.Item) ItemDTO {
	return ItemDTO{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Category: string(item.Category),
		Qty:      item.Qty,
	}
}

func toItemDTOs(items []*domain.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toItemDTO(item))
	}
	return dtos
}
