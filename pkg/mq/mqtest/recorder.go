// Package mqtest 提供记录已发布事件的 Publisher，用于测试异步发布
package mqtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Message 一条已发布的事件
type Message struct {
	Topic string
	Key   string
	Event any
}

// Recorder 记录所有 Publish 调用
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Publish 记录事件
func (r *Recorder) Publish(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Topic: topic, Key: key, Event: event})
	return nil
}

// Messages 返回已记录事件的副本
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// WaitFor 等待指定 topic 的事件出现并返回
func (r *Recorder) WaitFor(t testing.TB, topic string) Message {
	t.Helper()
	var found Message
	require.Eventually(t, func() bool {
		for _, m := range r.Messages() {
			if m.Topic == topic {
				found = m
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond, "no %s event published", topic)
	return found
}
