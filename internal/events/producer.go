package events

import (
	"context"
	"encoding/json"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is the subset of the kafka writer the producer needs; tests
// inject their own.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Publisher is the interface services use to publish events.
type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close() error
}

// KafkaProducer is a thin wrapper around a kafka writer implementing Publisher.
type KafkaProducer struct {
	writer Writer
	logger *zap.Logger
}

// NewKafkaProducer creates a producer writing to the given brokers/topic.
func NewKafkaProducer(brokers []string, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &skafka.Writer{
		Addr:     skafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return &KafkaProducer{writer: writer, logger: logger}
}

// NewKafkaProducerWithWriter allows injecting a test writer.
func NewKafkaProducerWithWriter(w Writer, logger *zap.Logger) *KafkaProducer {
	return &KafkaProducer{writer: w, logger: logger}
}

// Publish marshals the value to JSON and writes a message with the given key.
func (p *KafkaProducer) Publish(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		p.logger.Error("marshal event", zap.Error(err))
		return err
	}
	msg := skafka.Message{Key: []byte(key), Value: raw}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("kafka write", zap.Error(err))
		return err
	}
	return nil
}

// Close closes the underlying writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
