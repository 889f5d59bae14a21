package domain

import (
	"context"
	"time"
)

const (
	UserSignedInTopic  = "auth.signed_in"
	UserSignedOutTopic = "auth.signed_out"
)

// EventPublisher 事件发布者接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// UserSignedInEvent 登录事件
type UserSignedInEvent struct {
	UserID    uint      `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// UserSignedOutEvent 登出事件
type UserSignedOutEvent struct {
	UserID    uint      `json:"user_id"`
	TokenID   string    `json:"token_id"`
	Timestamp time.Time `json:"timestamp"`
}
