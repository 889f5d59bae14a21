package domain

import (
	"context"
	"time"
)

const (
	CartUpdatedTopic = "cart.updated"
	CartClearedTopic = "cart.cleared"
)

// EventPublisher 事件发布者接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// CartUpdatedEvent 购物车行变更事件
type CartUpdatedEvent struct {
	UserID    uint      `json:"user_id"`
	ItemID    uint      `json:"item_id"`
	Delta     int       `json:"delta"`
	Qty       int       `json:"qty"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	UserID    uint      `json:"user_id"`
	Lines     int64     `json:"lines"`
	Timestamp time.Time `json:"timestamp"`
}
