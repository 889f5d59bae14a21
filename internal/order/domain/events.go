package domain

import (
	"context"
	"time"
)

const OrderPlacedTopic = "order.placed"

// EventPublisher 事件发布者接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// OrderPlacedEvent 下单成功事件
type OrderPlacedEvent struct {
	OrderID   uint             `json:"order_id"`
	UserID    uint             `json:"user_id"`
	Total     string           `json:"total"`
	Lines     []OrderLineEvent `json:"lines"`
	Timestamp time.Time        `json:"timestamp"`
}

// OrderLineEvent 下单事件中的明细
type OrderLineEvent struct {
	ItemID uint `json:"item_id"`
	Qty    int  `json:"qty"`
}
