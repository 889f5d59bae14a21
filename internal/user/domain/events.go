package domain

import (
	"context"
	"time"
)

const (
	UserRegisteredTopic    = "user.registered"
	UserPasswordResetTopic = "user.password.reset"
	UserDeletedTopic       = "user.deleted"
)

// EventPublisher 事件发布者接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// UserRegisteredEvent 用户注册事件
type UserRegisteredEvent struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// UserPasswordResetEvent 密码重置事件
type UserPasswordResetEvent struct {
	UserID    uint      `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// UserDeletedEvent 用户注销事件
type UserDeletedEvent struct {
	UserID    uint      `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
