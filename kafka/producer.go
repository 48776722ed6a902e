package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Atlas00000/productvisualizer/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes cart events to a Kafka topic.
type Producer struct {
	writer MessageWriter
	topic  string
	logger *zap.Logger
}

func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
	return NewProducerWithWriter(writer, topic, logger)
}

// NewProducerWithWriter is used by tests to swap the broker connection.
func NewProducerWithWriter(writer MessageWriter, topic string, logger *zap.Logger) *Producer {
	return &Producer{writer: writer, topic: topic, logger: logger}
}

// Publish sends event keyed by user id so a shopper's events stay ordered.
func (p *Producer) Publish(ctx context.Context, event models.CartEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cart event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to send Kafka message", zap.String("topic", p.topic), zap.Error(err))
		return err
	}
	p.logger.Debug("Cart event sent", zap.String("topic", p.topic), zap.String("customization_id", event.CustomizationID))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
