package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// Category 商品分类
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategoryGrocery     Category = "grocery"
	CategoryToys        Category = "toys"
	CategorySports      Category = "sports"
	CategoryBeauty      Category = "beauty"
	CategoryOther       Category = "other"
)

// Categories 全部合法分类
var Categories = []Category{
	CategoryElectronics, CategoryClothing, CategoryBooks, CategoryHome, CategoryGrocery,
	CategoryToys, CategorySports, CategoryBeauty, CategoryOther,
}

// ParseCategory 解析分类，大小写不敏感
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", errorsx.Validationf("unknown category %q", s)
}

const maxItemNameLen = 255

var (
	ErrItemNotFound  = errorsx.NotFound("item not found")
	ErrItemNameTaken = errorsx.Conflict("item name already registered")
	ErrZeroQuantity  = errorsx.Validation("quantity can't be 0")
)

// Item 商品，库存 Qty 永不为负
type Item struct {
	ID        uint
	Name      string
	Price     decimal.Decimal
	Category  Category
	Qty       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem 校验并创建商品
func NewItem(name string, price decimal.Decimal, category Category, qty int) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errorsx.Validation("item name is required")
	}
	if utf8.RuneCountInString(name) > maxItemNameLen {
		return nil, errorsx.Validationf("item name must be at most %d characters", maxItemNameLen)
	}
	if price.IsNegative() {
		return nil, errorsx.Validation("price must not be negative")
	}
	if qty < 0 {
		return nil, errorsx.Validation("qty must not be negative")
	}
	if qty > utils.MaxQty {
		return nil, errorsx.Validationf("qty must be at most %d", utils.MaxQty)
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	return &Item{
		Name:     name,
		Price:    price.Round(2),
		Category: category,
		Qty:      qty,
	}, nil
}

// InsufficientStockError 库存不足，Available 为失败时读取到的可用库存
type InsufficientStockError struct {
	ItemID    uint
	ItemName  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s is low in stock, only %d left.", e.ItemName, e.Available)
}

// Kind 错误分类
func (e *InsufficientStockError) Kind() errorsx.Kind { return errorsx.KindInsufficientStock }

// Code 错误码
func (e *InsufficientStockError) Code() string { return "INSUFFICIENT_STOCK" }

// Message 面向客户端的错误描述
func (e *InsufficientStockError) Message() string { return e.Error() }

// Rating 商品评分，只追加
type Rating struct {
	ID        uint
	ItemID    uint
	Value     int
	CreatedAt time.Time
}

// NewRating 评分取值 1..5
func NewRating(itemID uint, value int) (*Rating, error) {
	if value < 1 || value > 5 {
		return nil, errorsx.Validation("rating must be between 1 and 5")
	}
	return &Rating{ItemID: itemID, Value: value}, nil
}
