package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

// ItemModel 商品表映射
type ItemModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
	Name      string          `gorm:"column:name;type:varchar(255);uniqueIndex;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null"`
	Category  string          `gorm:"column:category;type:varchar(32);index;not null"`
	Qty       int             `gorm:"column:qty;not null;default:0;check:chk_items_qty,qty >= 0"`
}

func (ItemModel) TableName() string { return "items" }

// RatingModel 商品评分表映射
type RatingModel struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	ItemID    uint       `gorm:"column:item_id;index;not null"`
	Rating    int        `gorm:"column:rating;not null"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	Item      *ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

func (RatingModel) TableName() string { return "item_ratings" }

// Models 本上下文拥有的表，按依赖顺序排列
func Models() []any {
	return []any{&ItemModel{}, &RatingModel{}}
}

func toItemModel(item *domain.Item) *ItemModel {
	if item == nil {
		return nil
	}
	return &ItemModel{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Name:      item.Name,
		Price:     item.Price,
		Category:  string(item.Category),
		Qty:       item.Qty,
	}
}

func toItem(model *ItemModel) *domain.Item {
	if model == nil {
		return nil
	}
	return &domain.Item{
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Name:      model.Name,
		Price:     model.Price,
		Category:  domain.Category(model.Category),
		Qty:       model.Qty,
	}
}

func toRating(model *RatingModel) *domain.Rating {
	return &domain.Rating{
		ID:        model.ID,
		ItemID:    model.ItemID,
		Value:     model.Rating,
		CreatedAt: model.CreatedAt,
	}
}
