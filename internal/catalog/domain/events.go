package domain

import (
	"context"
	"time"
)

const (
	ItemRegisteredTopic   = "item.registered"
	ItemDeletedTopic      = "item.deleted"
	ItemStockChangedTopic = "item.stock.changed"
	ItemRatedTopic        = "item.rated"
)

// EventPublisher 事件发布者接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// ItemRegisteredEvent 商品上架事件
type ItemRegisteredEvent struct {
	ItemID    uint      `json:"item_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Category  string    `json:"category"`
	Qty       int       `json:"qty"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemDeletedEvent 商品删除事件
type ItemDeletedEvent struct {
	ItemID    uint      `json:"item_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemStockChangedEvent 库存变更事件
type ItemStockChangedEvent struct {
	ItemID    uint      `json:"item_id"`
	Delta     int       `json:"delta"`
	NewQty    int       `json:"new_qty"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemRatedEvent 商品评分事件
type ItemRatedEvent struct {
	ItemID    uint      `json:"item_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
