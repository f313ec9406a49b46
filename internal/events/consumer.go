package events

import (
	"context"
	"time"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes one consumed message. Returning an error leaves the
// offset uncommitted so the message is redelivered.
type Handler func(ctx context.Context, key, value []byte) error

// KafkaConsumer wraps a kafka reader running a fetch/handle/commit loop.
type KafkaConsumer struct {
	reader *skafka.Reader
	logger *zap.Logger
}

// NewKafkaConsumer creates a consumer in the given group.
func NewKafkaConsumer(brokers []string, topic, groupID string, logger *zap.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader: skafka.NewReader(skafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		logger: logger,
	}
}

// Start runs the consume loop until the context is cancelled. It is
// meant to be launched in its own goroutine.
func (c *KafkaConsumer) Start(ctx context.Context, handler Handler) {
	c.logger.Info("consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group", c.reader.Config().GroupID))

	for {
		if ctx.Err() != nil {
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("fetch message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		processCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = handler(processCtx, msg.Key, msg.Value)
		cancel()

		if err != nil {
			// uncommitted: kafka redelivers
			c.logger.Error("event processing failed",
				zap.Int64("offset", msg.Offset), zap.Error(err))
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit offset", zap.Error(err))
		}
	}
}

// Close disconnects the reader.
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
