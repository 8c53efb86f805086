package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/volcano-explorer/internal/config"
	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

// Writer publishes normalized volcano records to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch writes one message per volcano in a single WriteMessages
// call. Messages are keyed by volcano so a reload overwrites earlier records
// on a compacted topic.
func (w *Writer) PublishBatch(ctx context.Context, volcanoes []domain.Volcano, loadedAt time.Time) error {
	if len(volcanoes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(volcanoes))
	for i := range volcanoes {
		msg, err := serializeToMessage(volcanoes[i], loadedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	w.logger.Debug("published batch", "topic", w.writer.Topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Volcano into a Kafka message.
func serializeToMessage(v domain.Volcano, loadedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize volcano %q: %w", v.Name, err)
	}
	return kafkago.Message{
		Key:   []byte(v.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "region", Value: []byte(v.Region)},
			{Key: "loaded_at", Value: []byte(loadedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
