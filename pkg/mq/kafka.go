// Package mq 提供领域事件发布：Kafka 生产者与未配置 broker 时的空实现
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// Publisher 领域事件发布能力
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Brokers      []string
	TopicPrefix  string
	MaxRetries   int
	RetryBackoff int
}

// Envelope 事件信封
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer Kafka 生产者
type KafkaProducer struct {
	writer messageWriter
	prefix string
	now    func() time.Time
}

var _ Publisher = (*KafkaProducer)(nil)

// NewProducer 创建 Kafka 生产者
func NewProducer(cfg KafkaConfig) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Compression:            kafka.Gzip,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.MaxRetries,
		WriteBackoffMin:        time.Duration(cfg.RetryBackoff) * time.Millisecond,
		WriteBackoffMax:        time.Duration(cfg.RetryBackoff*10) * time.Millisecond,
	}

	logger.Info(context.Background(), "Kafka producer created successfully", "brokers", cfg.Brokers)
	return newProducer(writer, cfg.TopicPrefix)
}

func newProducer(w messageWriter, prefix string) *KafkaProducer {
	return &KafkaProducer{writer: w, prefix: prefix, now: time.Now}
}

// Topic 拼接 topic 前缀
func (kp *KafkaProducer) Topic(name string) string {
	if kp.prefix == "" {
		return name
	}
	return kp.prefix + "." + name
}

// Publish 以 JSON 信封发送事件，同一 key 落在同一分区
func (kp *KafkaProducer) Publish(ctx context.Context, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data, err := json.Marshal(Envelope{Type: topic, OccurredAt: kp.now().UTC(), Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Topic: kp.Topic(topic),
		Key:   []byte(key),
		Value: data,
	}
	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error(ctx, "Failed to send Kafka message", "topic", msg.Topic, "key", key, "error", err)
		return err
	}

	logger.Debug(ctx, "Kafka message sent", "topic", msg.Topic, "key", key)
	return nil
}

// Close 关闭生产者
func (kp *KafkaProducer) Close() error {
	return kp.writer.Close()
}

// NopPublisher 丢弃所有事件
type NopPublisher struct{}

// Publish 空实现
func (NopPublisher) Publish(ctx context.Context, topic, key string, event any) error {
	logger.Debug(ctx, "event dropped, no broker configured", "topic", topic, "key", key)
	return nil
}

// PublishAsync 在后台发布事件，失败只记录日志，不影响已提交的业务结果
func PublishAsync(ctx context.Context, p Publisher, topic, key string, event any) {
	if p == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		pubCtx, cancel := context.WithTimeout(detached, 5*time.Second)
		defer cancel()
		if err := p.Publish(pubCtx, topic, key, event); err != nil {
			logger.Warn(pubCtx, "event publish failed", "topic", topic, "key", key, "error", err)
		}
	}()
}
